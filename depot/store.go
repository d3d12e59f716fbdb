// Package depot implements a content-addressed archive directory with
// symlink publishing. Identical file content is stored once regardless of
// how many times or under how many names it is published.
package depot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/reelworks/framekit"
)

// Defaults for stored version names.
const (
	DefaultVersionPrefix = "v"
	DefaultVersionDigits = 4
)

// maxVersionProbes bounds the free-name search. Reaching it means the
// store holds an implausible number of versions of one base name.
const maxVersionProbes = 1 << 20

// Store is a content-addressed archive directory. Publishing a file either
// finds an existing stored copy with identical bytes or writes a new
// versioned copy, then points a relative symlink at it from the publish
// location.
//
// A Store holds no state between calls and takes no locks: every publish
// re-reads the live directory. Concurrent publishes are safe against each
// other's reads, but the version-number allocation is a check-then-create
// sequence; two writers racing on the same base name can claim adjacent
// numbers or, at worst, last-write-wins on the publish link. Callers
// needing exclusivity must serialize externally.
type Store struct {
	dir           string
	algorithm     framekit.ChecksumAlgorithm
	versionPrefix string
	versionDigits int
	verify        bool
	blockSize     int
}

// New returns a Store rooted at dir. The directory must already exist.
func New(dir string, options ...Option) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, &framekit.PathError{Op: "store", Path: dir, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &framekit.PathError{Op: "store", Path: dir, Err: sentinel(err)}
	}
	if !info.IsDir() {
		return nil, &framekit.PathError{Op: "store", Path: dir, Err: framekit.ErrNotDir}
	}

	s := &Store{
		dir:           abs,
		algorithm:     framekit.ChecksumSHA256,
		versionPrefix: DefaultVersionPrefix,
		versionDigits: DefaultVersionDigits,
		blockSize:     framekit.DefaultBlockSize,
	}
	for _, option := range options {
		option(s)
	}

	if s.versionDigits < 1 {
		return nil, fmt.Errorf("%w: version digits must be at least 1", framekit.ErrInvalidArgument)
	}
	if s.blockSize <= 0 {
		return nil, fmt.Errorf("%w: block size must be positive", framekit.ErrInvalidArgument)
	}
	if _, err := framekit.NewHasher(s.algorithm); err != nil {
		return nil, err
	}
	return s, nil
}

// FromConfig returns a Store configured from cfg, rooted at cfg.StoreDir.
func FromConfig(cfg *framekit.Config) (*Store, error) {
	// An empty StoreDir would resolve to the working directory.
	if cfg.StoreDir == "" {
		return nil, fmt.Errorf("%w: store directory not configured", framekit.ErrInvalidArgument)
	}
	return New(cfg.StoreDir,
		WithChecksum(framekit.ChecksumAlgorithm(cfg.Checksum)),
		WithVersionPrefix(cfg.VersionPrefix),
		WithVersionDigits(cfg.VersionDigits),
		WithVerify(cfg.VerifiedCopy),
		WithBlockSize(cfg.BlockSize),
	)
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Publish stores the file at sourcePath and leaves a relative symlink to
// the stored copy at publishPath, replacing whatever was there. When the
// store already holds a file with identical content the existing copy is
// reused and no bytes are written. Returns the canonical stored path.
//
// The publish location must not sit inside the store directory, the source
// must be a regular file, and publishPath's parent directory must exist.
// Once started the operation runs to completion; the context is only
// consulted on entry.
func (s *Store) Publish(ctx context.Context, sourcePath, publishPath string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	source, err := filepath.Abs(sourcePath)
	if err != nil {
		return "", &framekit.PathError{Op: "publish", Path: sourcePath, Err: err}
	}
	publish, err := filepath.Abs(publishPath)
	if err != nil {
		return "", &framekit.PathError{Op: "publish", Path: publishPath, Err: err}
	}

	// A publish link inside the store would become a stored candidate
	// itself on the next call.
	if isPathUnder(s.dir, publish) {
		return "", &framekit.PathError{Op: "publish", Path: publishPath, Err: framekit.ErrInvalidArgument}
	}

	info, err := os.Stat(source)
	if err != nil {
		return "", &framekit.PathError{Op: "publish", Path: sourcePath, Err: sentinel(err)}
	}
	if !info.Mode().IsRegular() {
		if info.IsDir() {
			return "", &framekit.PathError{Op: "publish", Path: sourcePath, Err: framekit.ErrIsDir}
		}
		return "", &framekit.PathError{Op: "publish", Path: sourcePath, Err: framekit.ErrInvalidArgument}
	}

	dinfo, err := os.Stat(s.dir)
	if err != nil {
		return "", &framekit.PathError{Op: "publish", Path: s.dir, Err: sentinel(err)}
	}
	if !dinfo.IsDir() {
		return "", &framekit.PathError{Op: "publish", Path: s.dir, Err: framekit.ErrNotDir}
	}

	parent := filepath.Dir(publish)
	pinfo, err := os.Stat(parent)
	if err != nil {
		return "", &framekit.PathError{Op: "publish", Path: parent, Err: sentinel(err)}
	}
	if !pinfo.IsDir() {
		return "", &framekit.PathError{Op: "publish", Path: parent, Err: framekit.ErrNotDir}
	}

	canonical, err := s.store(source, info.Size(), filepath.Base(publish))
	if err != nil {
		return "", err
	}

	// Read-only marking is best effort: on a shared store the canonical
	// file may belong to another publisher and refuse the chmod.
	_ = os.Chmod(canonical, 0o444)

	if err := s.link(canonical, publish, parent); err != nil {
		return "", err
	}
	return canonical, nil
}

// store returns the path of an existing canonical file with the same
// content as source, or writes source under a fresh versioned name derived
// from baseName.
func (s *Store) store(source string, size int64, baseName string) (string, error) {
	index, err := s.sizeIndex()
	if err != nil {
		return "", err
	}

	candidates := index[size]
	var sourceSum string
	if len(candidates) > 0 {
		if sourceSum, err = framekit.ChecksumFile(source, s.algorithm, s.blockSize); err != nil {
			return "", err
		}
	}

	for _, name := range candidates {
		candidate := filepath.Join(s.dir, name)
		sum, err := framekit.ChecksumFile(candidate, s.algorithm, s.blockSize)
		if err != nil {
			// A candidate vanishing mid-scan is a concurrent
			// publisher's doing; skip it.
			if framekit.IsNotExist(err) {
				continue
			}
			return "", err
		}
		if sum == sourceSum {
			return candidate, nil
		}
	}

	return s.copyVersioned(source, baseName, sourceSum)
}

// sizeIndex groups the store's current regular files by byte size. It is
// rebuilt from a live listing on every publish and never cached.
func (s *Store) sizeIndex() (map[int64][]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &framekit.PathError{Op: "publish", Path: s.dir, Err: sentinel(err)}
	}

	index := make(map[int64][]string)
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		index[info.Size()] = append(index[info.Size()], e.Name())
	}
	return index, nil
}

// copyVersioned writes source into the store under the first free
// versioned name for baseName: <base>.<prefix><NNNN><ext>. The
// probe-then-create sequence is not atomic; a concurrent publisher can
// claim a name between the probe and the create, which surfaces as an
// exists error and moves the probe to the next number.
func (s *Store) copyVersioned(source, baseName, sourceSum string) (string, error) {
	ext := filepath.Ext(baseName)
	base := strings.TrimSuffix(baseName, ext)

	for v := 1; v <= maxVersionProbes; v++ {
		name := fmt.Sprintf("%s.%s%0*d%s", base, s.versionPrefix, s.versionDigits, v, ext)
		target := filepath.Join(s.dir, name)

		if _, err := os.Lstat(target); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return "", &framekit.PathError{Op: "publish", Path: target, Err: err}
		}

		err := s.copyFile(source, target, sourceSum)
		if errors.Is(err, framekit.ErrExist) {
			// Lost the race for this name; try the next number.
			continue
		}
		if err != nil {
			return "", err
		}
		return target, nil
	}
	return "", &framekit.PathError{Op: "publish", Path: baseName, Err: framekit.ErrNameCollision}
}

// copyFile streams source into a freshly created target in fixed-size
// blocks and optionally verifies the written bytes. A copy that fails
// verification is left in place for inspection.
func (s *Store) copyFile(source, target, sourceSum string) error {
	in, err := os.Open(source)
	if err != nil {
		return &framekit.PathError{Op: "publish", Path: source, Err: sentinel(err)}
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return &framekit.PathError{Op: "publish", Path: target, Err: framekit.ErrExist}
		}
		return &framekit.PathError{Op: "publish", Path: target, Err: sentinel(err)}
	}

	_, err = io.CopyBuffer(out, in, make([]byte, s.blockSize))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &framekit.PathError{Op: "publish", Path: target, Err: err}
	}

	if s.verify {
		if sourceSum == "" {
			if sourceSum, err = framekit.ChecksumFile(source, s.algorithm, s.blockSize); err != nil {
				return err
			}
		}
		sum, err := framekit.ChecksumFile(target, s.algorithm, s.blockSize)
		if err != nil {
			return err
		}
		if sum != sourceSum {
			return &framekit.PathError{Op: "publish", Path: target, Err: framekit.ErrVerification}
		}
	}
	return nil
}

// link replaces whatever sits at publish with a relative symlink to the
// canonical file, computed from publish's parent directory. Both endpoints
// are cleaned first so trailing separators cannot skew the relative path.
func (s *Store) link(canonical, publish, parent string) error {
	relDir, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(s.dir))
	if err != nil {
		return &framekit.PathError{Op: "publish", Path: publish, Err: err}
	}
	target := filepath.Join(relDir, filepath.Base(canonical))

	if err := os.Remove(publish); err != nil && !os.IsNotExist(err) {
		return &framekit.PathError{Op: "publish", Path: publish, Err: sentinel(err)}
	}
	if err := os.Symlink(target, publish); err != nil {
		return &framekit.PathError{Op: "publish", Path: publish, Err: sentinel(err)}
	}
	return nil
}

// SameContent reports whether two files hold identical bytes, comparing
// sizes before checksumming both. A blockSize of zero or less streams with
// the default block size.
func SameContent(a, b string, algorithm framekit.ChecksumAlgorithm, blockSize int) (bool, error) {
	ia, err := os.Stat(a)
	if err != nil {
		return false, &framekit.PathError{Op: "compare", Path: a, Err: sentinel(err)}
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false, &framekit.PathError{Op: "compare", Path: b, Err: sentinel(err)}
	}
	if ia.Size() != ib.Size() {
		return false, nil
	}

	sa, err := framekit.ChecksumFile(a, algorithm, blockSize)
	if err != nil {
		return false, err
	}
	sb, err := framekit.ChecksumFile(b, algorithm, blockSize)
	if err != nil {
		return false, err
	}
	return sa == sb, nil
}

// isPathUnder reports whether path sits at or below root. Both paths must
// be absolute.
func isPathUnder(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return !filepath.IsAbs(rel) && rel != ".." &&
		!strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// sentinel maps operating system errors onto the framekit sentinels.
func sentinel(err error) error {
	switch {
	case os.IsNotExist(err):
		return framekit.ErrNotExist
	case os.IsExist(err):
		return framekit.ErrExist
	case os.IsPermission(err):
		return framekit.ErrPermission
	default:
		return err
	}
}
