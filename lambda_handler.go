package main

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type optimizeRequest struct {
	Request
	Archive json.RawMessage `json:"archive"`
}

// newHandler returns a Function URL handler serving optimization requests
// against the given game data.
func newHandler(gameData string) func(context.Context, events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	return func(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
		body := event.Body
		if event.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(body)
			if err != nil {
				return errResp(400, "invalid base64 body")
			}
			body = string(decoded)
		}

		var req optimizeRequest
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			return errResp(400, "invalid JSON: "+err.Error())
		}

		gd, err := ParseGameData(gameData)
		if err != nil {
			return errResp(500, err.Error())
		}
		arch := &BuildArchive{}
		if len(req.Archive) > 0 {
			if arch, err = ParseArchive(string(req.Archive)); err != nil {
				return errResp(400, err.Error())
			}
		}

		opt := NewOptimizer(gd, arch, gd, nil, DefaultConfig())
		res, _, err := runOptimize(ctx, opt, req.Request)
		switch {
		case IsCancelled(err):
			return errResp(504, err.Error())
		case err != nil:
			return errResp(400, err.Error())
		}

		respJSON, _ := json.Marshal(res)
		return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
	}
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}
