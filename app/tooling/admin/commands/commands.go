// Package commands contains the admin tool commands. They all run against
// the node's private API with a bearer token minted from the shared secret.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Node describes how to reach the private API of a journal node.
type Node struct {
	URL    string
	Secret string
}

// token mints a short lived HS256 bearer token for the private API.
func (n Node) token() (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    "journalchain admin",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(5 * time.Minute)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(n.Secret))
}

// call performs the request against the private API and decodes the
// response into the specified value.
func (n Node) call(method string, path string, response any) error {
	tkn, err := n.token()
	if err != nil {
		return fmt.Errorf("minting token: %w", err)
	}

	req, err := http.NewRequest(method, n.URL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+tkn)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("node returned status %d: %s", resp.StatusCode, body)
	}

	if response == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(response)
}
