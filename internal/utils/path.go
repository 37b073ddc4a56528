package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Statistics and dictionary file patterns that mark a data directory.
const (
	StatisticsPattern = "*-*gram-nocs*.gz"
	DictionaryPattern = "Dictionary_*.dic"
)

// ConfigFileName is the default config file name.
const ConfigFileName = "langstats.toml"

// PathResolver finds the statistics data directory of the binaries. The
// config directory comes from config.GetConfigDir.
type PathResolver struct {
	execDir   string
	configDir string
}

// NewPathResolver locates the running executable. configDir may be empty.
func NewPathResolver(configDir string) (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	if execPath, err = filepath.EvalSymlinks(execPath); err != nil {
		return nil, err
	}
	pr := &PathResolver{execDir: filepath.Dir(execPath), configDir: configDir}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.execDir, configDir)
	return pr, nil
}

// GetDataDir returns the first candidate directory holding at least one
// statistics table or dictionary. Candidates are tried in this order:
//  1. userPath, if absolute
//  2. userPath relative to the executable
//  3. userPath relative to the working directory
//  4. data/ next to the executable, its parent, and the config dir
//
// When nothing matches, the most likely location is returned so callers can
// report it.
func (pr *PathResolver) GetDataDir(userPath string) (string, error) {
	for _, path := range pr.candidates(userPath) {
		if isDataDir(path) {
			log.Debugf("Found valid data directory: %s", path)
			return path, nil
		}
		log.Debugf("Data directory candidate not valid: %s", path)
	}
	if filepath.IsAbs(userPath) {
		return userPath, nil
	}
	return filepath.Join(pr.execDir, userPath), nil
}

// CandidateReport describes one place GetDataDir looked.
type CandidateReport struct {
	Path  string
	IsDir bool
	// Files are the statistics and dictionary files found there.
	Files []string
}

// DataDirReport explains how a data directory was resolved.
type DataDirReport struct {
	Requested  string
	Resolved   string
	Found      bool
	Candidates []CandidateReport
}

// DiagnosePathIssues reports every candidate data directory and what it holds.
func (pr *PathResolver) DiagnosePathIssues(userPath string) DataDirReport {
	report := DataDirReport{Requested: userPath}
	report.Resolved, _ = pr.GetDataDir(userPath)
	report.Found = isDataDir(report.Resolved)

	for _, path := range pr.candidates(userPath) {
		stat, err := os.Stat(path)
		report.Candidates = append(report.Candidates, CandidateReport{
			Path:  path,
			IsDir: err == nil && stat.IsDir(),
			Files: listDataFiles(path),
		})
	}
	return report
}

func isDataDir(path string) bool {
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return false
	}
	return len(listDataFiles(path)) > 0
}

func listDataFiles(path string) []string {
	var files []string
	for _, pattern := range []string{StatisticsPattern, DictionaryPattern} {
		matches, err := filepath.Glob(filepath.Join(path, pattern))
		if err != nil {
			continue
		}
		for _, m := range matches {
			files = append(files, filepath.Base(m))
		}
	}
	return files
}

func (pr *PathResolver) candidates(userPath string) []string {
	var out []string
	if filepath.IsAbs(userPath) {
		out = append(out, userPath)
	}
	out = append(out, filepath.Join(pr.execDir, userPath))
	if cwd, err := os.Getwd(); err == nil {
		out = append(out, filepath.Join(cwd, userPath))
	}
	out = append(out,
		filepath.Join(pr.execDir, "data"),
		filepath.Join(filepath.Dir(pr.execDir), "data"),
	)
	if pr.configDir != "" {
		out = append(out, filepath.Join(pr.configDir, "data"))
	}
	return out
}
