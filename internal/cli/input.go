package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"aerogap-backend/internal/assessment"
	"aerogap-backend/internal/quiz"
)

// LoadAssessment reads assessment data from a YAML or JSON file.
func LoadAssessment(path string) (assessment.Data, error) {
	var data assessment.Data
	if err := decodeFile(path, &data); err != nil {
		return assessment.Data{}, err
	}
	return data, nil
}

// LoadAnswers reads quiz answers (answer field -> option value).
func LoadAnswers(path string) (quiz.Answers, error) {
	answers := quiz.Answers{}
	if err := decodeFile(path, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func decodeFile(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "read %s", path)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(raw, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, v)
	default:
		return eris.Errorf("%s: unsupported file type %q (want .yaml, .yml or .json)", path, ext)
	}
	if err != nil {
		return eris.Wrapf(err, "parse %s", path)
	}
	return nil
}
