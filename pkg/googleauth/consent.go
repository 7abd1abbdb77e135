package googleauth

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/oauth2"
)

// ConsentProvider runs the interactive half of the OAuth2 flow: get the
// user in front of the authorization URL and come back with a token.
// Injected so tests and alternative frontends can substitute their own.
type ConsentProvider interface {
	Obtain(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error)
}

// CLIConsent prints the authorization URL and reads the pasted
// authorization code from standard input.
type CLIConsent struct {
	In  io.Reader
	Out io.Writer
}

// Obtain implements ConsentProvider.
func (c CLIConsent) Obtain(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	authURL := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintln(out, "=================================================================")
	fmt.Fprintln(out, "STEP 1: Open the following URL in a browser and sign in:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, authURL)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "=================================================================")
	fmt.Fprint(out, "STEP 2: Paste the authorization code here and press Enter: ")

	var code string
	if _, err := fmt.Fscan(in, &code); err != nil {
		return nil, fmt.Errorf("reading authorization code: %w", err)
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	return tok, nil
}
