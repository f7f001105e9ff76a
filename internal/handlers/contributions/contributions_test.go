package contributions

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/milistaderegalos/payouts/internal/domain"
	"github.com/milistaderegalos/payouts/internal/service/contributionservice"
)

func NewMock(t *testing.T) (*ContributionHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func TestRecord(t *testing.T) {
	const body = `{"list_id": 311, "order_id": "wc-98321", "owner_user_id": 15, "gross_amount": 25000}`

	tests := []struct {
		name         string
		body         string
		prepareMock  func(service *MockService)
		expectedCode int
		expectedBody string
	}{
		{
			name: "New contribution credited",
			body: body,
			prepareMock: func(service *MockService) {
				service.EXPECT().RecordContribution(gomock.Any(), int64(311), "wc-98321", int64(15), int64(25000)).Return(&contributionservice.Contribution{
					Entry:       &domain.LedgerEntry{ID: 42},
					HostAmount:  25000,
					PlatformFee: 2500,
				}, nil)
			},
			expectedCode: http.StatusCreated,
			expectedBody: `{"entry_id":42,"host_amount":25000,"platform_fee":2500,"duplicate":false}`,
		},
		{
			name: "Replayed order answered idempotently",
			body: body,
			prepareMock: func(service *MockService) {
				service.EXPECT().RecordContribution(gomock.Any(), int64(311), "wc-98321", int64(15), int64(25000)).Return(&contributionservice.Contribution{
					Entry:       &domain.LedgerEntry{ID: 42},
					HostAmount:  25000,
					PlatformFee: 2500,
					Duplicate:   true,
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"entry_id":42,"host_amount":25000,"platform_fee":2500,"duplicate":true}`,
		},
		{
			name:         "Malformed body",
			body:         `{`,
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Missing order id",
			body:         `{"list_id": 311, "owner_user_id": 15, "gross_amount": 25000}`,
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Service failure",
			body: body,
			prepareMock: func(service *MockService) {
				service.EXPECT().RecordContribution(gomock.Any(), int64(311), "wc-98321", int64(15), int64(25000)).Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			req := httptest.NewRequest(http.MethodPost, "/api/internal/contributions", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.Record(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}
