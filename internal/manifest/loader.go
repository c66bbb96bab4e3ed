package manifest

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/monorun/internal/ctxlog"
	"github.com/vk/monorun/internal/fsutil"
	"github.com/vk/monorun/internal/workspace"
)

const (
	// RootFileName is the repository-level manifest, required.
	RootFileName = "monorun.hcl"
	// WorkspaceFileName marks a subdirectory as a workspace.
	WorkspaceFileName = "workspace.hcl"
)

// Root is the decoded repository-level configuration.
type Root struct {
	Roots       []string
	Concurrency int
}

// Loader reads the root manifest and discovers workspace manifests.
type Loader struct{}

// NewLoader creates a manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadRoot parses monorun.hcl under repoRoot. Any failure here is fatal to
// the invocation: without the root manifest there is no workspace topology.
func (l *Loader) LoadRoot(ctx context.Context, repoRoot string) (*Root, error) {
	logger := ctxlog.FromContext(ctx)
	path := filepath.Join(repoRoot, RootFileName)
	logger.Debug("Loading root manifest.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse root manifest %s: %s", path, diags.Error())
	}

	var decoded rootFile
	if diags := gohcl.DecodeBody(file.Body, nil, &decoded); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode root manifest %s: %s", path, diags.Error())
	}
	if len(decoded.Roots) == 0 {
		return nil, fmt.Errorf("root manifest %s declares no workspace roots", path)
	}

	logger.Debug("Root manifest loaded.", "roots", decoded.Roots, "concurrency", decoded.Concurrency)
	return &Root{Roots: decoded.Roots, Concurrency: decoded.Concurrency}, nil
}

// Discover enumerates the immediate subdirectories of every configured root
// and loads each one that carries a valid workspace manifest. Directories
// without a manifest, or with one that fails to parse or decode, are skipped.
// An unreadable configured root is a configuration error.
func (l *Loader) Discover(ctx context.Context, repoRoot string, roots []string) ([]*workspace.Workspace, error) {
	logger := ctxlog.FromContext(ctx)
	var found []*workspace.Workspace

	for _, root := range roots {
		dirs, err := fsutil.FindManifestDirs(filepath.Join(repoRoot, root), WorkspaceFileName)
		if err != nil {
			return nil, fmt.Errorf("failed to enumerate workspace root %s: %w", root, err)
		}
		for _, dir := range dirs {
			w, err := l.loadWorkspace(ctx, repoRoot, dir)
			if err != nil {
				logger.Debug("Skipping directory, not a valid workspace.", "dir", dir, "reason", err)
				continue
			}
			logger.Debug("Discovered workspace.", "name", w.Name, "dir", w.Dir)
			found = append(found, w)
		}
	}
	return found, nil
}

// loadWorkspace parses and decodes a single workspace.hcl. The returned
// workspace's Dir is relative to the repository root.
func (l *Loader) loadWorkspace(ctx context.Context, repoRoot, dir string) (*workspace.Workspace, error) {
	path := filepath.Join(dir, WorkspaceFileName)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse: %s", diags.Error())
	}

	var decoded workspaceFile
	if diags := gohcl.DecodeBody(file.Body, nil, &decoded); diags.HasErrors() {
		return nil, fmt.Errorf("decode: %s", diags.Error())
	}
	if decoded.Workspace == nil {
		return nil, fmt.Errorf("no workspace block in %s", path)
	}
	if decoded.Workspace.Name == "" {
		return nil, fmt.Errorf("empty workspace name in %s", path)
	}

	scripts, err := evalScripts(decoded.Workspace.Scripts)
	if err != nil {
		return nil, fmt.Errorf("invalid scripts attribute in %s: %w", path, err)
	}

	relDir, err := filepath.Rel(repoRoot, dir)
	if err != nil {
		return nil, err
	}

	deps := map[workspace.DepCategory][]string{}
	if d := decoded.Workspace.Dependencies; d != nil {
		deps[workspace.CatProduction] = d.Production
		deps[workspace.CatDevelopment] = d.Development
		deps[workspace.CatPeer] = d.Peer
		deps[workspace.CatOptional] = d.Optional
	}

	return &workspace.Workspace{
		Name:         decoded.Workspace.Name,
		Dir:          filepath.ToSlash(relDir),
		Scripts:      scripts,
		Dependencies: deps,
	}, nil
}

// evalScripts evaluates the scripts expression and converts it to a string
// mapping. The attribute is optional; a nil or null expression yields an
// empty mapping.
func evalScripts(expr hcl.Expression) (map[string]string, error) {
	scripts := make(map[string]string)
	if expr == nil {
		return scripts, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s", diags.Error())
	}
	if val.IsNull() {
		return scripts, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("scripts must be a mapping, got %s", val.Type().FriendlyName())
	}

	for name, v := range val.AsValueMap() {
		if v.Type() != cty.String || v.IsNull() {
			return nil, fmt.Errorf("script %q must be a string", name)
		}
		scripts[name] = v.AsString()
	}
	return scripts, nil
}
