//go:build lambda

package main

import (
	_ "embed"

	"github.com/aws/aws-lambda-go/lambda"
)

//go:embed data.json
var embeddedData string

func main() {
	lambda.Start(newHandler(embeddedData))
}
