package github

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
	"github.com/bhumika152/GitAssistant-Ollama/internal/core/ports/driven"
	"github.com/bhumika152/GitAssistant-Ollama/internal/logger"
)

// Provider clones repositories into a local cache directory using the
// git binary and reads basic metadata from the clone.
type Provider struct {
	cloneDir string
	token    string
	client   *Client // optional, enriches RepositoryInfo
}

var _ driven.SourceProvider = (*Provider)(nil)

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithToken sets the token used for authenticated clones.
func WithToken(token string) ProviderOption {
	return func(p *Provider) { p.token = token }
}

// WithClient attaches an API client used to enrich repository
// metadata. Without one, metadata comes from the clone alone.
func WithClient(client *Client) ProviderOption {
	return func(p *Provider) { p.client = client }
}

// NewProvider returns a provider that keeps clones under cloneDir.
func NewProvider(cloneDir string, opts ...ProviderOption) *Provider {
	p := &Provider{cloneDir: cloneDir}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CloneOrUpdate makes the repository available under the clone
// directory and returns its path. An existing clone is pulled; a pull
// failure is logged and the stale copy returned, since stale content
// is still indexable. With forceFresh the existing clone is removed
// first.
func (p *Provider) CloneOrUpdate(ctx context.Context, url string, forceFresh bool) (string, error) {
	ref, err := ParseURL(url)
	if err != nil {
		return "", err
	}

	localPath := filepath.Join(p.cloneDir, ref.Name)

	if forceFresh {
		if _, err := os.Stat(localPath); err == nil {
			logger.Info("Removing existing repository at %s", localPath)
			if err := os.RemoveAll(localPath); err != nil {
				return "", fmt.Errorf("removing %s: %w", localPath, err)
			}
		}
	}

	if _, err := os.Stat(filepath.Join(localPath, ".git")); err == nil {
		logger.Info("Repository already exists at %s", localPath)
		if err := p.pull(ctx, localPath); err != nil {
			logger.Warn("Could not update repository: %v", err)
		} else {
			logger.Info("Repository updated successfully")
		}
		return localPath, nil
	}

	if err := os.MkdirAll(p.cloneDir, 0o755); err != nil {
		return "", fmt.Errorf("creating clone dir: %w", err)
	}

	logger.Info("Cloning repository from %s...", ref.FullName)
	cloneURL := CloneURL(ref, p.token)
	if out, err := p.git(ctx, "", "clone", "--depth", "1", cloneURL, localPath); err != nil {
		return "", fmt.Errorf("cloning %s: %w: %s", ref.FullName, err, out)
	}
	logger.Info("Repository cloned successfully to %s", localPath)

	return localPath, nil
}

// RepositoryInfo reads name, branch, commit and remote from the clone.
// When an API client is configured, description and languages are
// fetched as well; API failures only degrade the metadata.
func (p *Provider) RepositoryInfo(ctx context.Context, path string) (domain.RepositoryInfo, error) {
	if _, err := os.Stat(filepath.Join(path, ".git")); err != nil {
		return domain.RepositoryInfo{}, fmt.Errorf("%s is not a git repository: %w", path, err)
	}

	info := domain.RepositoryInfo{
		Name: filepath.Base(path),
		Path: path,
	}

	if out, err := p.git(ctx, path, "rev-parse", "--abbrev-ref", "HEAD"); err == nil {
		info.Branch = strings.TrimSpace(out)
	}
	if out, err := p.git(ctx, path, "rev-parse", "--short=7", "HEAD"); err == nil {
		info.Commit = strings.TrimSpace(out)
	}
	if out, err := p.git(ctx, path, "remote", "get-url", "origin"); err == nil {
		info.RemoteURL = redactToken(strings.TrimSpace(out))
	}

	if p.client != nil && info.RemoteURL != "" {
		if ref, err := ParseURL(info.RemoteURL); err == nil {
			remote, err := p.client.RepositoryMetadata(ctx, ref)
			if err != nil {
				logger.Warn("Could not fetch remote metadata for %s: %v", ref.FullName, err)
			} else {
				info.Description = remote.Description
				info.RemoteLanguages = remote.Languages
			}
		}
	}

	return info, nil
}

func (p *Provider) git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func (p *Provider) pull(ctx context.Context, dir string) error {
	out, err := p.git(ctx, dir, "pull", "--ff-only")
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(out))
	}
	return nil
}

// redactToken strips an embedded credential from a remote URL so it
// never reaches logs or reports.
func redactToken(url string) string {
	at := strings.Index(url, "@")
	scheme := strings.Index(url, "://")
	if at == -1 || scheme == -1 || at < scheme {
		return url
	}
	return url[:scheme+3] + url[at+1:]
}
