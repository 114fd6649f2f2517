package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).PaddingLeft(2)
	menuPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
)

// pickScene supplements trophy render with the scene picker load.h's
// `_retgui` offered in the original C program: list the .txt scene files
// under assetRoot/scenes, let the user preview one's raw text, and return
// the chosen path. It is a plain numbered prompt over stdin/stdout rather
// than a raw-mode arrow-key menu, since the render loop itself (not the
// picker) owns the terminal's alt-screen/raw-mode session.
func pickScene(out io.Writer, assetRoot string) (string, error) {
	dir := filepath.Join(assetRoot, "scenes")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("no scene to render was given and %s could not be listed: %w", dir, err)
	}

	var scenes []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".txt") {
			scenes = append(scenes, e.Name())
		}
	}
	sort.Strings(scenes)
	if len(scenes) == 0 {
		return "", fmt.Errorf("no *.txt scene files found under %s", dir)
	}

	fmt.Fprintln(out, menuTitleStyle.Render("trophy - pick a scene"))
	for i, name := range scenes {
		fmt.Fprintln(out, menuItemStyle.Render(fmt.Sprintf("%2d) %s", i+1, name)))
	}
	fmt.Fprint(out, menuPromptStyle.Render("enter a number, or 'p<number>' to preview: "))

	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("read selection: %w", err)
		}
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "p") {
			idx, err := strconv.Atoi(strings.TrimPrefix(line, "p"))
			if err != nil || idx < 1 || idx > len(scenes) {
				fmt.Fprint(out, menuPromptStyle.Render("unrecognized choice, try again: "))
				continue
			}
			previewScene(out, filepath.Join(dir, scenes[idx-1]))
			fmt.Fprint(out, menuPromptStyle.Render("enter a number, or 'p<number>' to preview: "))
			continue
		}

		idx, err := strconv.Atoi(line)
		if err != nil || idx < 1 || idx > len(scenes) {
			fmt.Fprint(out, menuPromptStyle.Render("unrecognized choice, try again: "))
			continue
		}
		return filepath.Join(dir, scenes[idx-1]), nil
	}
}

// previewScene prints a scene file's raw text, the same preview the
// original's picker offered before committing to a load.
func previewScene(out io.Writer, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(out, menuPromptStyle.Render(fmt.Sprintf("could not preview %s: %v", path, err)))
		return
	}
	fmt.Fprintln(out, menuItemStyle.Render(string(data)))
}
