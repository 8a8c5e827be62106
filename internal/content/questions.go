package content

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/strandworks/lumibot/internal/core"
)

// LoadQuestions reads the ordered question bank. A missing file yields an
// empty bank, which the engine resolves to an immediate quiz result.
func LoadQuestions(path string) ([]core.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}

	var questions []core.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}

	for i, q := range questions {
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("question %d has no options", i)
		}
	}
	return questions, nil
}
