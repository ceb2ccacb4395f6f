package api

import (
	"fmt"

	json "github.com/json-iterator/go"
)

// Every successful response is wrapped as {"data": {"result": <payload>}}.
type envelope struct {
	Data struct {
		Result json.RawMessage `json:"result"`
	} `json:"data"`
}

// decodeResult unwraps the response envelope into target
func decodeResult(body []byte, target interface{}) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}
	if len(env.Data.Result) == 0 {
		return fmt.Errorf("response envelope has no result")
	}
	return json.Unmarshal(env.Data.Result, target)
}
