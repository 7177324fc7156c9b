package services

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

type GoogleProfile struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// GoogleVerifier exchanges a client supplied Google access token for the profile it belongs to.
type GoogleVerifier interface {
	Verify(ctx context.Context, accessToken string) (*GoogleProfile, error)
}

type googleUserinfoVerifier struct {
	extraOpts []option.ClientOption
}

func NewGoogleVerifier(opts ...option.ClientOption) GoogleVerifier {
	return &googleUserinfoVerifier{extraOpts: opts}
}

func (v *googleUserinfoVerifier) Verify(ctx context.Context, accessToken string) (*GoogleProfile, error) {
	opts := append([]option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})),
	}, v.extraOpts...)

	svc, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create oauth2 service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}

	return &GoogleProfile{
		Subject:       info.Id,
		Email:         info.Email,
		EmailVerified: info.VerifiedEmail != nil && *info.VerifiedEmail,
		Name:          info.Name,
		Picture:       info.Picture,
	}, nil
}
