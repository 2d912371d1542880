package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

func newClient() *resty.Client {
	c := resty.New().
		SetBaseURL(apiFlag).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
	if tokenFlag != "" {
		c.SetAuthToken(tokenFlag)
	}
	return c
}

// printResult dumps the raw JSON body on success and turns HTTP-level errors
// into command errors.
func printResult(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%s: %s", resp.Status(), strings.TrimSpace(resp.String()))
	}
	if body := strings.TrimSpace(string(resp.Body())); body != "" {
		_, _ = fmt.Fprintln(os.Stdout, body)
	}
	return nil
}
