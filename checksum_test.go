package framekit

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCalculateChecksum(t *testing.T) {
	const content = "Hello, World!"

	tests := []struct {
		name      string
		algorithm ChecksumAlgorithm
		want      string
	}{
		{
			name:      "md5",
			algorithm: ChecksumMD5,
			want:      "65a8e27d8879283831b664bd8b7f0ad4",
		},
		{
			name:      "sha1",
			algorithm: ChecksumSHA1,
			want:      "0a0a9f2a6772942557ab5355d76af442f8f65e01",
		},
		{
			name:      "sha256",
			algorithm: ChecksumSHA256,
			want:      "dffd6021bb2bd5b0af676290809ec3a53191dd81c7f70a4b28688a362182986f",
		},
		{
			name:      "crc32",
			algorithm: ChecksumCRC32,
			want:      "ec4ac3d0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateChecksum(strings.NewReader(content), tt.algorithm)
			if err != nil {
				t.Fatalf("CalculateChecksum() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CalculateChecksum() = %s, want %s", got, tt.want)
			}
		})
	}

	// The remaining algorithms have no vectors pinned here; check digest
	// width and that a one-byte change moves the sum.
	widths := map[ChecksumAlgorithm]int{
		ChecksumSHA512: 128,
		ChecksumXXHash: 16,
		ChecksumBLAKE3: 64,
	}
	for algorithm, width := range widths {
		t.Run(string(algorithm), func(t *testing.T) {
			a, err := CalculateChecksum(strings.NewReader(content), algorithm)
			if err != nil {
				t.Fatalf("CalculateChecksum() error = %v", err)
			}
			if len(a) != width {
				t.Errorf("digest width = %d, want %d", len(a), width)
			}
			b, err := CalculateChecksum(strings.NewReader(content+"x"), algorithm)
			if err != nil {
				t.Fatalf("CalculateChecksum() error = %v", err)
			}
			if a == b {
				t.Error("different content produced the same digest")
			}
		})
	}

	t.Run("unsupported algorithm", func(t *testing.T) {
		_, err := CalculateChecksum(strings.NewReader(content), "md4")
		if !errors.Is(err, ErrNotSupported) {
			t.Fatalf("error = %v, want ErrNotSupported", err)
		}
	})
}

func TestCalculateChecksums(t *testing.T) {
	const content = "Hello, World!"
	algorithms := []ChecksumAlgorithm{ChecksumMD5, ChecksumSHA256, ChecksumCRC32}

	sums, err := CalculateChecksums(strings.NewReader(content), algorithms)
	if err != nil {
		t.Fatalf("CalculateChecksums() error = %v", err)
	}
	if len(sums) != len(algorithms) {
		t.Fatalf("len(sums) = %d, want %d", len(sums), len(algorithms))
	}
	for _, algorithm := range algorithms {
		want, err := CalculateChecksum(strings.NewReader(content), algorithm)
		if err != nil {
			t.Fatalf("CalculateChecksum(%s) error = %v", algorithm, err)
		}
		if sums[algorithm] != want {
			t.Errorf("sums[%s] = %s, want %s", algorithm, sums[algorithm], want)
		}
	}

	if _, err := CalculateChecksums(strings.NewReader(content), nil); err == nil {
		t.Error("CalculateChecksums() with no algorithms, want error")
	}
}

func TestChecksumFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	content := strings.Repeat("0123456789", 100)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	want, err := CalculateChecksum(strings.NewReader(content), ChecksumSHA256)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("default block size", func(t *testing.T) {
		got, err := ChecksumFile(path, ChecksumSHA256, 0)
		if err != nil {
			t.Fatalf("ChecksumFile() error = %v", err)
		}
		if got != want {
			t.Errorf("ChecksumFile() = %s, want %s", got, want)
		}
	})

	t.Run("block smaller than content", func(t *testing.T) {
		got, err := ChecksumFile(path, ChecksumSHA256, 16)
		if err != nil {
			t.Fatalf("ChecksumFile() error = %v", err)
		}
		if got != want {
			t.Errorf("ChecksumFile() = %s, want %s", got, want)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ChecksumFile(filepath.Join(dir, "nope.bin"), ChecksumSHA256, 0)
		if !IsNotExist(err) {
			t.Fatalf("error = %v, want ErrNotExist", err)
		}
	})
}

func TestVerifyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	if err := os.WriteFile(path, []byte("Hello, World!"), 0o644); err != nil {
		t.Fatal(err)
	}

	ok, err := VerifyFile(path, "65a8e27d8879283831b664bd8b7f0ad4", ChecksumMD5)
	if err != nil {
		t.Fatalf("VerifyFile() error = %v", err)
	}
	if !ok {
		t.Error("VerifyFile() = false, want true")
	}

	ok, err = VerifyFile(path, "0000000000000000", ChecksumMD5)
	if err != nil {
		t.Fatalf("VerifyFile() error = %v", err)
	}
	if ok {
		t.Error("VerifyFile() = true, want false")
	}
}
