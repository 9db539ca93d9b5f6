package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// CognitoAPI is the subset of the Cognito client the provider calls.
type CognitoAPI interface {
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	GlobalSignOut(ctx context.Context, in *cip.GlobalSignOutInput, optFns ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error)
}

type CognitoProvider struct {
	api      CognitoAPI
	clientID string
}

func NewCognitoProvider(api CognitoAPI, clientID string) *CognitoProvider {
	return &CognitoProvider{api: api, clientID: clientID}
}

// NewCognitoProviderFromRegion builds the AWS client from the default
// credential chain.
func NewCognitoProviderFromRegion(ctx context.Context, region, clientID string) (*CognitoProvider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("auth: load aws config: %w", err)
	}
	return NewCognitoProvider(cip.NewFromConfig(cfg), clientID), nil
}

func (p *CognitoProvider) Authenticate(ctx context.Context, email, password string) (Tokens, error) {
	out, err := p.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		var notAuth *types.NotAuthorizedException
		var notFound *types.UserNotFoundException
		if errors.As(err, &notAuth) || errors.As(err, &notFound) {
			return Tokens{}, ErrInvalidCredentials
		}
		return Tokens{}, fmt.Errorf("auth: cognito initiate auth: %w", err)
	}
	res := out.AuthenticationResult
	if res == nil {
		return Tokens{}, fmt.Errorf("%w: %s", ErrChallengeRequired, out.ChallengeName)
	}
	return Tokens{
		AccessToken: aws.ToString(res.AccessToken),
		IDToken:     aws.ToString(res.IdToken),
		ExpiresIn:   res.ExpiresIn,
	}, nil
}

func (p *CognitoProvider) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	_, err := p.api.GlobalSignOut(ctx, &cip.GlobalSignOutInput{AccessToken: aws.String(accessToken)})
	return err
}
