package testfixtures

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing/fstest"

	"github.com/okian/statusboard/internal/domain/model"
)

// FileName returns the data file name for r. Responses without a valid
// temperature get a name with no separator.
func FileName(r model.ModelResponse) string {
	if !r.Temperature.Valid() {
		return r.Model + ".json"
	}
	return r.Model + "_" + r.Temperature.String() + ".json"
}

// Encode renders r in the data file format.
func Encode(r model.ModelResponse) []byte {
	items := r.Items
	if items == nil {
		items = []model.StatusItem{}
	}
	b, err := json.Marshal(struct {
		Items []model.StatusItem `json:"items"`
	}{items})
	if err != nil {
		panic(fmt.Sprintf("testfixtures: encode %s: %v", FileName(r), err))
	}
	return b
}

// WriteDir writes one file per response into dir. Later responses with the
// same file name overwrite earlier ones.
func WriteDir(dir string, responses []model.ModelResponse) error {
	for _, r := range responses {
		if err := os.WriteFile(filepath.Join(dir, FileName(r)), Encode(r), 0o600); err != nil {
			return fmt.Errorf("testfixtures: %w", err)
		}
	}
	return nil
}

// MapFS returns responses as an in-memory file tree.
func MapFS(responses []model.ModelResponse) fstest.MapFS {
	fsys := make(fstest.MapFS, len(responses))
	for _, r := range responses {
		fsys[FileName(r)] = &fstest.MapFile{Data: Encode(r), Mode: 0o600}
	}
	return fsys
}

// Canonical is a small fixed collection: two models at valid temperatures
// and one file whose name carries no temperature.
func Canonical() []model.ModelResponse {
	return []model.ModelResponse{
		{Model: "claude-opus-4", Temperature: 0.2, Items: []model.StatusItem{
			{Name: "Superyacht", Kind: model.KindObject, Rating: 99},
			{Name: "Polo", Kind: model.KindActivity, Rating: 75},
		}},
		{Model: "gpt-4o", Temperature: 0.7, Items: []model.StatusItem{
			{Name: "Private jet", Kind: model.KindObject, Rating: 97},
			{Name: "Michelin dinner", Kind: model.KindActivity, Rating: 82},
		}},
		{Model: "mystery", Temperature: model.InvalidTemperature(), Items: []model.StatusItem{
			{Name: "Island", Kind: model.KindObject, Rating: 95},
		}},
	}
}
