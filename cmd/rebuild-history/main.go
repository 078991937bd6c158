// Rebuilds the processed-posts history file from the audio directory.
// Useful when the JSON history is lost or corrupt but the narrated MP3s are
// still on disk: post IDs are recovered from the <id>_<title>.mp3 filenames.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: rebuild-history <audio-directory> <history-file>")
	}

	audioDir := os.Args[1]
	historyFile := os.Args[2]

	ids, err := collectPostIDs(audioDir)
	if err != nil {
		log.Fatal(err)
	}
	if len(ids) == 0 {
		log.Fatalf("No audio files found in %s", audioDir)
	}

	if fileExists(historyFile) && !confirmOverwrite(historyFile) {
		log.Println("Aborted")
		return
	}

	if err := writeHistory(historyFile, ids); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %d post IDs to %s", len(ids), historyFile)
}

// collectPostIDs extracts the post ID prefix from every MP3 in the audio
// directory, de-duplicated and sorted.
func collectPostIDs(audioDir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(audioDir, "*.mp3"))
	if err != nil {
		return nil, fmt.Errorf("listing audio files: %w", err)
	}

	seen := make(map[string]struct{})
	var ids []string
	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".mp3")
		id, _, found := strings.Cut(name, "_")
		if !found || id == "" {
			log.Printf("Skipping %s: no post ID prefix", filepath.Base(file))
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func confirmOverwrite(path string) bool {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("Overwrite %s? [y/N]: ", path)
		input, err := reader.ReadString('\n')
		if err != nil {
			log.Printf("Error reading input: %v", err)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "y", "yes":
			return true
		case "", "n", "no":
			return false
		default:
			fmt.Println("Please enter y or n.")
		}
	}
}

func writeHistory(path string, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
