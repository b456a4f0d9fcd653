package simulator

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// LoadProjectConfig reads per-project configuration from disk. No config
// file is ever deployed for the seeded project.
func (s *Service) LoadProjectConfig(projectID string) (map[string]any, error) {
	path := filepath.Join("config", "projects", projectID+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load config for project %s", projectID)
	}

	var cfg map[string]any
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config for project %s", projectID)
	}
	return cfg, nil
}

// ExportProject writes the project's tasks to the export directory. The
// previous export was locked read-only by a backup job, and the writability
// check refuses to clobber it.
func (s *Service) ExportProject(projectID string) (string, error) {
	project := s.loadProject(projectID)

	type exportedTask struct {
		ID       string   `json:"id"`
		Title    string   `json:"title"`
		Tags     []string `json:"tags"`
		Priority int      `json:"priority"`
	}
	export := make([]exportedTask, 0, len(project.Tasks))
	for _, task := range project.Tasks {
		export = append(export, exportedTask{
			ID:       task.ID,
			Title:    task.Title,
			Tags:     task.Tags,
			Priority: task.Priority,
		})
	}
	payload, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encode export")
	}

	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create export dir")
	}
	path := filepath.Join(s.exportDir, projectID+".json")
	if err := lockPreviousExport(path); err != nil {
		return "", err
	}

	if err := s.writeExport(path, payload); err != nil {
		return "", errors.Wrapf(err, "export project %s", projectID)
	}
	return path, nil
}

// lockPreviousExport reproduces the state left behind by the nightly backup
// job: an existing export whose permissions were stripped to read-only.
func lockPreviousExport(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(path, []byte(`{"placeholder": true}`), 0o644); err != nil {
			return errors.Wrap(err, "seed previous export")
		}
	}
	if err := os.Chmod(path, 0o444); err != nil {
		return errors.Wrap(err, "lock previous export")
	}
	return nil
}

func (s *Service) writeExport(path string, payload []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if info.Mode().Perm()&0o200 == 0 {
		return errors.WithStack(&fs.PathError{Op: "open", Path: path, Err: fs.ErrPermission})
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	if _, err := f.Write(payload); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
