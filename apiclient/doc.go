// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apiclient calls the AgroConnect REST API.

The base URL is fixed when the Client is built; every path is prefixed with
/api. Authenticated calls take the bearer token explicitly so the client holds
no session state of its own:

	c := apiclient.New("http://localhost:8001", apiclient.WithTimeout(30*time.Second))
	resp, err := c.Login(ctx, "a@b.test", "secret")
	crops, err := c.MyCrops(ctx, resp.Token)

# Errors

A non-2xx response becomes *APIError carrying the status code and the
backend's detail string. Transport failures wrap ErrUnreachable. Message turns
either into text for the user:

	apiclient.Message(err, "Failed to add crop")

No call is retried.
*/
package apiclient
