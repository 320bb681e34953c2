package build

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// imageFormat renders one JSON object per image from the engine's image list.
const imageFormat = `{"repository":"{{.Repository}}","tag":"{{.Tag}}","id":"{{.ID}}","created":"{{.CreatedAt}}"}`

// LocalImage is an image built by crossfreight, as reported by the engine.
type LocalImage struct {
	Repository string
	Tag        string
	ID         string
	Created    time.Time
}

// Ref returns repository:tag, or the ID for untagged images.
func (i LocalImage) Ref() string {
	if i.Tag == "" {
		return i.ID
	}
	return i.Repository + ":" + i.Tag
}

// ListImages returns the images labelled as built for a target. A non-empty
// workspaceRoot limits the list to images of that workspace.
func ListImages(ctx context.Context, e Engine, r Runner, workspaceRoot string) ([]LocalImage, error) {
	filter := "label=" + LabelDomain + ".for-cross-target"
	if workspaceRoot != "" {
		filter = fmt.Sprintf("label=%s.workspace_root=%s", LabelDomain, workspaceRoot)
	}

	inv := e.Subcommand("images")
	inv.Arg("--format", imageFormat, "--filter", filter, "--no-trunc")
	out, err := r.Output(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	return parseImages(string(out))
}

func parseImages(out string) ([]LocalImage, error) {
	var images []LocalImage
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var img struct {
			Repository string `json:"repository"`
			Tag        string `json:"tag"`
			ID         string `json:"id"`
			Created    string `json:"created"`
		}
		if err := json.Unmarshal([]byte(line), &img); err != nil {
			return nil, fmt.Errorf("decoding image list line %q: %w", line, err)
		}
		if img.Tag == "<none>" {
			img.Tag = ""
		}
		images = append(images, LocalImage{
			Repository: img.Repository,
			Tag:        img.Tag,
			ID:         img.ID,
			Created:    parseTimestamp(img.Created),
		})
	}
	slices.SortFunc(images, func(a, b LocalImage) int { return strings.Compare(a.Ref(), b.Ref()) })
	return images, nil
}

// RemoveImages deletes images by reference.
func RemoveImages(ctx context.Context, e Engine, r Runner, images []LocalImage) error {
	if len(images) == 0 {
		return nil
	}
	inv := e.Subcommand("rmi")
	for _, img := range images {
		inv.Arg(img.Ref())
	}
	if err := r.Run(ctx, inv); err != nil {
		return fmt.Errorf("removing images: %w", err)
	}
	return nil
}

// parseTimestamp handles the formats docker and podman print for CreatedAt.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, f := range []string{
		"2006-01-02 15:04:05 -0700 MST",
		"2006-01-02 15:04:05.999999999 -0700 MST",
		time.RFC3339,
	} {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
