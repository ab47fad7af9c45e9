package seeder

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"enigma/internal/puzzle/models"
	ratelimit "enigma/internal/ratelimit/config"
	dErrors "enigma/pkg/domain-errors"
	"enigma/pkg/platform/httputil"
	"enigma/pkg/platform/validation"
)

// Built-in identities used when no seed file is configured.
const (
	DefaultAdminUUID     = "admin-b290-6877-42c1-afe1-0e40f0098df6"
	DefaultDashboardUUID = "dash-52dc-2330-49f1-89e9-00fb6440cd5b"
	DemoUserUUID         = "user-demo-1234-5678-abcd-efgh"
)

// File is the TOML layout of a seed file.
//
//	admin_uuid = "admin-..."
//	dashboard_uuid = "dash-..."
//	game_state = "active"
//
//	[rate_limit.answer]
//	max_failures = 3
//	lock_minutes = 10
//
//	[[questions]]
//	id = "q1"
//	text = "..."
//	answer = "..."
//	hints = ["..."]
//	hint_password = "..."
//	order = 1
//
//	[[users]]
//	uuid = "user-..."
//	name = "..."
type File struct {
	AdminUUID     string         `toml:"admin_uuid"`
	DashboardUUID string         `toml:"dashboard_uuid"`
	GameState     string         `toml:"game_state"`
	RateLimit     rateLimitFile  `toml:"rate_limit"`
	Questions     []questionFile `toml:"questions"`
	Users         []userFile     `toml:"users"`
}

type rateLimitFile struct {
	Answer       policyFile `toml:"answer"`
	HintPassword policyFile `toml:"hint_password"`
}

type policyFile struct {
	MaxFailures int `toml:"max_failures"`
	LockMinutes int `toml:"lock_minutes"`
}

type questionFile struct {
	ID           string   `toml:"id"`
	Text         string   `toml:"text"`
	Answer       string   `toml:"answer"`
	Hints        []string `toml:"hints"`
	HintPassword string   `toml:"hint_password"`
	Order        int      `toml:"order"`
}

type userFile struct {
	UUID string `toml:"uuid"`
	Name string `toml:"name"`
}

// Content is validated seed data ready to be written.
type Content struct {
	Config    models.AdminConfig
	Questions models.QuestionSet
	Users     []userFile
}

// Defaults is the content seeded when no file is configured.
func Defaults() *Content {
	return &Content{
		Config: models.AdminConfig{
			AdminUUID:       DefaultAdminUUID,
			DashboardUUID:   DefaultDashboardUUID,
			RateLimitConfig: ratelimit.DefaultConfig(),
			GameState:       models.GameComingSoon,
		},
		Questions: models.QuestionSet{
			{
				ID:           "q1",
				Text:         "What has keys but can't open locks?",
				Answer:       "piano",
				Hints:        []string{"It makes music", "You press them to create sound"},
				HintPassword: "music123",
				Order:        1,
			},
			{
				ID:           "q2",
				Text:         "I am tall when I am young, and short when I am old. What am I?",
				Answer:       "candle",
				Hints:        []string{"I give light", "I melt as time passes"},
				HintPassword: "light789",
				Order:        2,
			},
			{
				ID:     "q3",
				Text:   "What gets wet while drying?",
				Answer: "towel",
				Hints:  []string{"Used in bathrooms", "Made of fabric"},
				Order:  3,
			},
		},
		Users: []userFile{{UUID: DemoUserUUID, Name: "Demo User"}},
	}
}

// LoadFile decodes and validates a seed file. Omitted identities and
// policies fall back to the built-in defaults.
func LoadFile(path string) (*Content, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("seed file %s: unknown keys %v", path, undecoded)
	}
	return f.content()
}

func (f *File) content() (*Content, error) {
	c := Defaults()
	if f.AdminUUID != "" {
		c.Config.AdminUUID = strings.TrimSpace(f.AdminUUID)
	}
	if f.DashboardUUID != "" {
		c.Config.DashboardUUID = strings.TrimSpace(f.DashboardUUID)
	}
	if f.GameState != "" {
		c.Config.GameState = models.GameState(f.GameState)
	}
	c.Config.RateLimitConfig = ratelimit.Config{
		Answer:       ratelimit.Policy(f.RateLimit.Answer),
		HintPassword: ratelimit.Policy(f.RateLimit.HintPassword),
	}.OrDefault()
	if err := validateConfig(c.Config); err != nil {
		return nil, err
	}

	if len(f.Questions) > 0 {
		req := make(models.ReplaceQuestionsRequest, len(f.Questions))
		for i, q := range f.Questions {
			req[i] = models.Question(q)
		}
		if err := httputil.PrepareRequest(&req); err != nil {
			return nil, err
		}
		c.Questions = models.QuestionSet(req).Sorted()
	}

	if len(f.Users) > 0 {
		c.Users = c.Users[:0]
		for _, u := range f.Users {
			if !validation.IsAccessID(u.UUID) {
				return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("user %q: uuid is not a valid access UUID", u.UUID))
			}
			c.Users = append(c.Users, u)
		}
	}
	return c, nil
}

func validateConfig(cfg models.AdminConfig) error {
	gs := cfg.GameState
	req := models.UpdateConfigRequest{
		AdminUUID:       cfg.AdminUUID,
		DashboardUUID:   cfg.DashboardUUID,
		RateLimitConfig: &cfg.RateLimitConfig,
		GameState:       &gs,
	}
	return req.Validate()
}
