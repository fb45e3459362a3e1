// Package httpclient sends single requests to remote speech-to-text
// services and classifies what went wrong.
//
// Every failure is an *Error whose Kind separates deadlines, transport
// failures (a cancelled context included) and non-2xx statuses.
// ToAppError translates those into the application error codes at the
// service boundary.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.deepgram.com",
//	    Timeout: 5 * time.Minute,
//	})
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method:      http.MethodPost,
//	    Path:        "/v1/listen",
//	    ContentType: "audio/wav",
//	    Body:        audio,
//	    Auth:        httpclient.TokenAuth(apiKey),
//	})
//
// Requests are never retried.
package httpclient
