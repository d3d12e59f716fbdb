package depot

import "github.com/reelworks/framekit"

// Option configures a Store.
type Option func(*Store)

// WithChecksum sets the algorithm used for content comparison and copy
// verification. The default is SHA-256.
func WithChecksum(algorithm framekit.ChecksumAlgorithm) Option {
	return func(s *Store) {
		s.algorithm = algorithm
	}
}

// WithVersionPrefix sets the prefix of the version counter in stored
// names, "v" by default.
func WithVersionPrefix(prefix string) Option {
	return func(s *Store) {
		s.versionPrefix = prefix
	}
}

// WithVersionDigits sets the zero-padded width of the version counter in
// stored names, 4 by default.
func WithVersionDigits(digits int) Option {
	return func(s *Store) {
		s.versionDigits = digits
	}
}

// WithVerify re-reads every newly written copy and compares its checksum
// against the source before publishing the link.
func WithVerify(verify bool) Option {
	return func(s *Store) {
		s.verify = verify
	}
}

// WithBlockSize sets the buffer size for copying and checksumming.
func WithBlockSize(blockSize int) Option {
	return func(s *Store) {
		s.blockSize = blockSize
	}
}
