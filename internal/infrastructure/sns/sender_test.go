package sns

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, in)
	return &sns.PublishOutput{}, args.Error(0)
}

func TestSendSMS_PublishesToPhone(t *testing.T) {
	p := &mockPublisher{}
	p.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		return *in.PhoneNumber == "+919876543210" && *in.Message == "Your OTP: 123456"
	})).Return(nil)

	s := &sender{client: p}
	assert.NoError(t, s.SendSMS(context.Background(), "+919876543210", "Your OTP: 123456"))
	p.AssertExpectations(t)
}

func TestSendSMS_Error(t *testing.T) {
	p := &mockPublisher{}
	p.On("Publish", mock.Anything, mock.Anything).Return(errors.New("opted out"))

	s := &sender{client: p}
	assert.ErrorContains(t, s.SendSMS(context.Background(), "1", "x"), "opted out")
}
