package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCognito struct {
	out       *cip.InitiateAuthOutput
	err       error
	lastInput *cip.InitiateAuthInput
	signedOut string
}

func (f *fakeCognito) InitiateAuth(_ context.Context, in *cip.InitiateAuthInput, _ ...func(*cip.Options)) (*cip.InitiateAuthOutput, error) {
	f.lastInput = in
	return f.out, f.err
}

func (f *fakeCognito) GlobalSignOut(_ context.Context, in *cip.GlobalSignOutInput, _ ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error) {
	f.signedOut = aws.ToString(in.AccessToken)
	return &cip.GlobalSignOutOutput{}, nil
}

func TestCognitoAuthenticate(t *testing.T) {
	fake := &fakeCognito{out: &cip.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{
			AccessToken: aws.String("access"),
			IdToken:     aws.String("id"),
			ExpiresIn:   3600,
		},
	}}
	p := NewCognitoProvider(fake, "client-123")

	tokens, err := p.Authenticate(context.Background(), "ana@x.co", "pw")
	require.NoError(t, err)
	assert.Equal(t, Tokens{AccessToken: "access", IDToken: "id", ExpiresIn: 3600}, tokens)
	assert.Equal(t, types.AuthFlowTypeUserPasswordAuth, fake.lastInput.AuthFlow)
	assert.Equal(t, "client-123", aws.ToString(fake.lastInput.ClientId))
	assert.Equal(t, "ana@x.co", fake.lastInput.AuthParameters["USERNAME"])

	require.NoError(t, p.SignOut(context.Background(), "access"))
	assert.Equal(t, "access", fake.signedOut)
}

func TestCognitoErrors(t *testing.T) {
	p := NewCognitoProvider(&fakeCognito{err: &types.NotAuthorizedException{}}, "c")
	_, err := p.Authenticate(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	p = NewCognitoProvider(&fakeCognito{err: &types.UserNotFoundException{}}, "c")
	_, err = p.Authenticate(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	p = NewCognitoProvider(&fakeCognito{out: &cip.InitiateAuthOutput{ChallengeName: types.ChallengeNameTypeNewPasswordRequired}}, "c")
	_, err = p.Authenticate(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrChallengeRequired)

	boom := errors.New("network")
	p = NewCognitoProvider(&fakeCognito{err: boom}, "c")
	_, err = p.Authenticate(context.Background(), "a", "b")
	assert.ErrorIs(t, err, boom)
}
