package errx

import "net/http"

// WrapGateway marks an error as a generation-gateway failure. The pipeline
// treats these as fatal for the current turn.
func WrapGateway(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, GatewayErrorMessage)
}

// WrapSchema marks a model result that failed schema validation. Like gateway
// failures, this is fatal for the turn; the result is never partially trusted.
func WrapSchema(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, SchemaErrorMessage)
}
