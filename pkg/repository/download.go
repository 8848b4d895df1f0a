package repository

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/mvnresolve/pkg/errors"
	"github.com/matzehuels/mvnresolve/pkg/httputil"
	"github.com/matzehuels/mvnresolve/pkg/observability"
	"github.com/matzehuels/mvnresolve/pkg/version"
)

// ArtifactURL returns the URL of one file of a version:
//
//	{base}/{versionWithoutBuildInfo}/{artifactId}-{releaseIdentifier}[-{classifier}].{extension}
//
// Snapshot builds live in their SNAPSHOT directory and drop the
// "-SNAPSHOT" marker from the file name, so 1.0-SNAPSHOT-20211215.173200-4
// maps to 1.0-SNAPSHOT/artifact-1.0-20211215.173200-4.jar. An empty
// classifier means none. Both path segments are escaped, so a '#' or '?'
// in a version stays part of the path.
func (c *Client) ArtifactURL(v version.Version, classifier, extension string) (string, error) {
	if v.IsZero() {
		return "", errors.New(errors.ErrCodeInvalidArgument, "artifact version is required")
	}
	if err := errors.ValidateExtension(extension); err != nil {
		return "", err
	}
	if classifier != "" {
		if err := errors.ValidateIdentifier("classifier", classifier); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidArgument, err, "invalid classifier")
		}
	}

	name := c.coords.ArtifactID + "-" + v.ReleaseIdentifier()
	if classifier != "" {
		name += "-" + classifier
	}
	name += "." + extension
	return c.coords.BaseURL() + "/" + url.PathEscape(v.WithoutBuildInfo().String()) + "/" + url.PathEscape(name), nil
}

// Download fetches one file of a version and writes it to dest.
//
// Arguments are checked before any request is made. Parent directories
// are created as needed and an existing file at dest is replaced. The
// body is written to a temporary file next to dest and renamed into
// place, so dest never holds a partial download.
//
// Request failures are wrapped in DOWNLOAD; local I/O failures are
// FILESYSTEM errors.
func (c *Client) Download(ctx context.Context, v version.Version, classifier, extension, dest string) error {
	if dest == "" {
		return errors.New(errors.ErrCodeInvalidArgument, "destination path is required")
	}
	url, err := c.ArtifactURL(v, classifier, extension)
	if err != nil {
		return err
	}

	ctx, id := httputil.EnsureRequestID(ctx)
	start := time.Now()
	size, err := c.download(ctx, url, dest)
	observability.Resolve().OnDownloadComplete(ctx, url, dest, size, time.Since(start), err)
	if err != nil {
		c.logger.Debug("download failed", "url", url, "dest", dest, "id", id, "err", err)
		return err
	}
	c.logger.Debug("downloaded", "url", url, "dest", dest, "id", id, "bytes", size)
	return nil
}

func (c *Client) download(ctx context.Context, url, dest string) (int64, error) {
	body, err := c.request(ctx, url)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeDownload, err, "download %s", url)
	}
	defer body.Close()

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errors.Wrap(errors.ErrCodeFilesystem, err, "create directory %s", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.part")
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeFilesystem, err, "create temporary file in %s", dir)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	size, err := copyBody(tmp, body)
	if err != nil {
		if errors.Is(err, errors.ErrCodeTransport) {
			return size, errors.Wrap(errors.ErrCodeDownload, err, "download %s", url)
		}
		return size, err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return size, errors.Wrap(errors.ErrCodeFilesystem, err, "set permissions on %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return size, errors.Wrap(errors.ErrCodeFilesystem, err, "close %s", tmpName)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		committed = true
		return size, errors.Wrap(errors.ErrCodeFilesystem, err, "move download to %s", dest)
	}
	committed = true
	return size, nil
}

// copyBody copies src to dst, telling read failures (the connection) apart
// from write failures (the disk).
func copyBody(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			w, werr := dst.Write(buf[:n])
			written += int64(w)
			if werr != nil {
				return written, errors.Wrap(errors.ErrCodeFilesystem, werr, "write download")
			}
			if w != n {
				return written, errors.Wrap(errors.ErrCodeFilesystem, io.ErrShortWrite, "write download")
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, errors.Wrap(errors.ErrCodeTransport, rerr, "read response body")
		}
	}
}
