package statistic

import (
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"grailhunter/internal/models"
	"grailhunter/internal/providers"
	"grailhunter/internal/services"
	"grailhunter/internal/statistic/interfaces"
	"os"
	"path/filepath"
)

var ErrSnapshotVersion = errors.New("unsupported snapshot version")

type FileManager struct {
	service    services.UsageServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, service services.UsageServiceInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
	}
}

// SaveToFile writes the usage snapshot through a temp file and renames it
// into place, so a crash never leaves a half-written file behind.
func (f *FileManager) SaveToFile(fileName string) error {
	snapshot := f.service.GetSnapshot()

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(fileName); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile merges a saved snapshot into the service. A missing file is
// not an error; the first run has nothing to restore.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return fmt.Errorf("decompress %s: %w", fileName, err)
	}

	var snapshot models.UsageSnapshot
	if err := json.Unmarshal(decompressedData, &snapshot); err != nil {
		return fmt.Errorf("decode %s: %w", fileName, err)
	}
	if snapshot.Version > models.UsageSnapshotVersion {
		return fmt.Errorf("%w: %d", ErrSnapshotVersion, snapshot.Version)
	}
	if snapshot.Version == 0 {
		f.logger.Warnf(providers.TypeApp, "Snapshot %s has no version, assuming %d", fileName, models.UsageSnapshotVersion)
	}
	if snapshot.Endpoints == nil {
		snapshot.Endpoints = make(map[string]models.EndpointUsage)
	}

	if err := f.service.PutSnapshot(&snapshot); err != nil {
		f.logger.Warnf(providers.TypeApp, "Snapshot %s client sets skipped: %v", fileName, err)
	}
	f.logger.Infof(providers.TypeApp, "Restored usage for %d endpoints from %s", len(snapshot.Endpoints), fileName)
	return nil
}
