package ctxrequest

import (
	"context"
	"net/http"
)

func fetch(ctx context.Context, url string) error {
	if _, err := http.NewRequest(http.MethodGet, url, nil); err != nil { // want `http.NewRequest does not carry a context`
		return err
	}
	if _, err := http.Get(url); err != nil { // want `http.Get does not carry a context`
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	_ = req
	return nil
}
