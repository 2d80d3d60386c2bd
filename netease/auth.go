package netease

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
	"github.com/yhkl-dev/EaseCLI/domain"
)

// LoginCellphone signs in with a phone number and password. A response code
// other than 200 is reported as domain.ErrAuth.
func (c *Client) LoginCellphone(ctx context.Context, phone, password string) (*LoginResponse, error) {
	params := url.Values{}
	params.Set("phone", phone)
	params.Set("password", password)

	var resp LoginResponse
	if err := c.get(ctx, "/login/cellphone", params, &resp); err != nil {
		return nil, err
	}
	if resp.Code != codeOK {
		msg := resp.Message
		if msg == "" {
			msg = "invalid credentials"
		}
		return nil, errors.Wrapf(domain.ErrAuth, "login: %s (code %d)", msg, resp.Code)
	}

	c.log.WithField("user_id", resp.Account.ID).Info("logged in")
	return &resp, nil
}
