package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kamalesh73/smart--study-scheduler/internal/models"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(models.Preferences{
		Goal:      "pass exam",
		Subjects:  "Math,Physics",
		Deadline:  7,
		DailyTime: 2.5,
		Slots:     "evenings",
	})

	for _, want := range []string{
		"pass exam",
		"Math,Physics",
		"- Deadline (days from today): 7",
		"- Daily study time (hours): 2.5",
		"evenings",
		"- Flexibility: not specified",
		`"dayOfWeek"`,
		`"startTime"`,
		`"endTime"`,
		`"subject"`,
		"ONLY a JSON array",
	} {
		assert.Contains(t, prompt, want)
	}
}
