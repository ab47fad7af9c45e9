package validation

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "enigma/pkg/domain-errors"
)

type sampleConfig struct {
	AdminUUID     string `json:"adminUuid" validate:"required,accessid"`
	DashboardUUID string `json:"dashboardUuid" validate:"required,accessid,nefield=AdminUUID"`
	MaxFailures   int    `json:"maxFailures" validate:"min=1,max=20"`
}

type sampleUser struct {
	Name     string   `json:"name" validate:"notblank,max=50,displayname"`
	Password string   `json:"hintPassword" validate:"hintpassword"`
	Hints    []string `json:"hints" validate:"max=5"`
	Type     string   `json:"type" validate:"oneof=answer hint both"`
}

type ValidationSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationSuite))
}

func (s *ValidationSuite) TestAccessID() {
	s.True(IsAccessID("user-demo-1234-5678-abcd-efgh"))
	s.True(IsAccessID("admin-b290-6877-42c1-afe1-0e40f0098df6"))
	s.False(IsAccessID("short"))
	s.False(IsAccessID("user_with_underscores"))
	s.False(IsAccessID("user-' OR 1=1 --"))
}

func (s *ValidationSuite) TestMessagesUseJSONNames() {
	cases := []struct {
		name string
		in   any
		msg  string
	}{
		{"required", sampleConfig{DashboardUUID: "dash-1234-5678", MaxFailures: 3}, "adminUuid is required"},
		{"accessid", sampleConfig{AdminUUID: "bad!", DashboardUUID: "dash-1234-5678", MaxFailures: 3}, "adminUuid is not a valid access UUID"},
		{"nefield", sampleConfig{AdminUUID: "same-1234-5678", DashboardUUID: "same-1234-5678", MaxFailures: 3}, "dashboardUuid must differ from AdminUUID"},
		{"max int", sampleConfig{AdminUUID: "admin-1234-5678", DashboardUUID: "dash-1234-5678", MaxFailures: 21}, "maxFailures must be at most 20"},
		{"notblank", sampleUser{Name: "   ", Type: "both"}, "name must not be blank"},
		{"displayname", sampleUser{Name: "<script>", Type: "both"}, "name contains invalid characters"},
		{"hintpassword", sampleUser{Name: "Demo", Password: "has space", Type: "both"}, "hintPassword contains invalid characters"},
		{"max slice", sampleUser{Name: "Demo", Hints: make([]string, 6), Type: "both"}, "hints allows at most 5 entries"},
		{"oneof", sampleUser{Name: "Demo", Type: "all"}, "type must be one of [answer hint both]"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			err := Validate(tc.in)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation))
			s.Equal(tc.msg, err.Error())
		})
	}
}

func (s *ValidationSuite) TestValid() {
	s.NoError(Validate(sampleConfig{AdminUUID: "admin-1234-5678", DashboardUUID: "dash-1234-5678", MaxFailures: 3}))
	s.NoError(Validate(sampleUser{Name: "Demo User", Password: "music123", Type: "hint"}))
}
