package httpx

import (
    "io"
    "net"
    "net/http"
    "time"
)

// Client is a small wrapper around http.Client with sane defaults.
// It satisfies the HTTPClient interfaces of the provider packages.
type Client struct {
    HTTP      *http.Client
    UserAgent string
    Headers   map[string]string
    // Retries is the number of extra attempts after a transport error or a
    // 5xx response. Zero disables retrying.
    Retries int
    // Backoff is multiplied by the attempt number between attempts.
    Backoff time.Duration
}

func New(timeout time.Duration) *Client {
    transport := &http.Transport{
        Proxy: http.ProxyFromEnvironment,
        DialContext: (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
        MaxIdleConns:          20,
        MaxIdleConnsPerHost:   10,
        ForceAttemptHTTP2:     true,
        IdleConnTimeout:       90 * time.Second,
        TLSHandshakeTimeout:   3 * time.Second,
        ExpectContinueTimeout: 1 * time.Second,
        ResponseHeaderTimeout: timeout,
    }
    return &Client{
        HTTP:      &http.Client{Timeout: timeout, Transport: transport},
        UserAgent: "trackit/1.0",
        Backoff:   500 * time.Millisecond,
    }
}

// Do sends req, retrying idempotent GETs when configured. The request
// context bounds the whole sequence including backoff waits.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
    if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
        req.Header.Set("User-Agent", c.UserAgent)
    }
    for k, v := range c.Headers {
        if req.Header.Get(k) == "" {
            req.Header.Set(k, v)
        }
    }

    attempts := 1
    if req.Method == http.MethodGet && c.Retries > 0 {
        attempts += c.Retries
    }

    var (
        resp *http.Response
        err  error
    )
    for i := 0; i < attempts; i++ {
        if i > 0 {
            if werr := wait(req, time.Duration(i)*c.Backoff); werr != nil {
                return nil, werr
            }
        }
        resp, err = c.HTTP.Do(req)
        if !retryable(resp, err) || i == attempts-1 {
            break
        }
        if resp != nil {
            // drain so the connection can be reused
            _, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
            resp.Body.Close()
        }
    }
    return resp, err
}

func retryable(resp *http.Response, err error) bool {
    if err != nil {
        return true
    }
    return resp.StatusCode >= 500
}

func wait(req *http.Request, d time.Duration) error {
    if d <= 0 {
        return req.Context().Err()
    }
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-req.Context().Done():
        return req.Context().Err()
    case <-t.C:
        return nil
    }
}
