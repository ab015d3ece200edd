package storage

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/tripplan/internal/model"
)

// ReferenceData is the destinations and offers a trip's points refer to.
type ReferenceData struct {
	Destinations []model.Destination `yaml:"destinations"`
	Offers       []model.OfferGroup  `yaml:"offers"`
}

// ReferenceFile reads and writes ReferenceData as YAML.
type ReferenceFile struct {
	mutex    sync.Mutex
	filename string
}

// NewReferenceFile returns a handler for the given file.
func NewReferenceFile(filename string) *ReferenceFile {
	return &ReferenceFile{filename: filename}
}

// Read parses the file. A missing file yields empty reference data.
func (h *ReferenceFile) Read() (ReferenceData, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	data, err := os.ReadFile(h.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return ReferenceData{}, nil
		}
		return ReferenceData{}, fmt.Errorf("could not read reference file '%s' (%w)", h.filename, err)
	}

	var result ReferenceData
	if err := yaml.Unmarshal(data, &result); err != nil {
		return ReferenceData{}, fmt.Errorf("could not parse reference file '%s' (%w)", h.filename, err)
	}
	return result, nil
}

// Write replaces the file's content.
func (h *ReferenceFile) Write(ref ReferenceData) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	data, err := yaml.Marshal(ref)
	if err != nil {
		return fmt.Errorf("could not marshal reference data (%w)", err)
	}
	if err := os.WriteFile(h.filename, data, 0644); err != nil {
		return fmt.Errorf("could not write reference file '%s' (%w)", h.filename, err)
	}
	return nil
}
