package media

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Store defines the interface for saving and resolving media assets
type Store interface {
	// Save stores data under the asset type's directory and returns the
	// relative path used
	Save(assetType AssetType, filename string, data io.Reader) (string, error)
	// FullPath returns the absolute filesystem path for a relative asset path
	FullPath(assetType AssetType, relativePath string) (string, error)
	// Exists reports whether a relative asset path is already present
	Exists(assetType AssetType, relativePath string) bool
	// Delete removes an asset; missing files are not an error
	Delete(assetType AssetType, relativePath string) error
}

// LocalStorage implements the Store interface using the local filesystem
type LocalStorage struct {
	basePath        string               // absolute media storage root
	resolvedPathMap map[AssetType]string // maps AssetType to full absolute path
}

// NewLocalStorage creates a new local filesystem store and ensures every
// configured asset type directory exists
func NewLocalStorage(basePath string, subDirs map[AssetType]string) (*LocalStorage, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid base storage path '%s': %w", basePath, err)
	}

	if err := os.MkdirAll(absBasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base storage directory '%s': %w", absBasePath, err)
	}

	resolvedPaths := make(map[AssetType]string)
	for assetType, subDir := range subDirs {
		fullPath := filepath.Join(absBasePath, subDir)
		if !strings.HasPrefix(filepath.Clean(fullPath), absBasePath) {
			return nil, fmt.Errorf("invalid subdirectory configuration: '%s' resolves outside base path '%s'", subDir, absBasePath)
		}
		if err := os.MkdirAll(fullPath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory '%s': %w", fullPath, err)
		}
		resolvedPaths[assetType] = fullPath
	}

	log.Printf("media.store: Initialized LocalStorage at %s", absBasePath)
	return &LocalStorage{
		basePath:        absBasePath,
		resolvedPathMap: resolvedPaths,
	}, nil
}

func (ls *LocalStorage) assetTypeDir(assetType AssetType) (string, error) {
	dirPath, ok := ls.resolvedPathMap[assetType]
	if !ok {
		return "", fmt.Errorf("asset type '%s' is not configured", assetType)
	}
	return dirPath, nil
}

// Save writes data to the asset type's directory. The filename is the
// caller's responsibility (content hash for originals, deterministic
// identity path for derivatives).
func (ls *LocalStorage) Save(assetType AssetType, filename string, data io.Reader) (string, error) {
	baseAssetDir, err := ls.assetTypeDir(assetType)
	if err != nil {
		return "", err
	}
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty for LocalStorage.Save")
	}

	fullSavePath := filepath.Join(baseAssetDir, filename)
	if !strings.HasPrefix(filepath.Clean(fullSavePath), baseAssetDir) {
		return "", fmt.Errorf("invalid filename '%s'", filename)
	}

	outFile, err := os.Create(fullSavePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file '%s': %w", fullSavePath, err)
	}
	defer outFile.Close()

	if _, err = io.Copy(outFile, data); err != nil {
		outFile.Close()
		os.Remove(fullSavePath)
		return "", fmt.Errorf("failed to write data to '%s': %w", fullSavePath, err)
	}

	log.Printf("media.store: Saved asset to %s", fullSavePath)
	return filepath.ToSlash(filename), nil
}

// FullPath calculates the absolute path and performs a traversal check
func (ls *LocalStorage) FullPath(assetType AssetType, relativePath string) (string, error) {
	baseAssetDir, err := ls.assetTypeDir(assetType)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(baseAssetDir, filepath.Clean(relativePath))
	absFullPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", relativePath, err)
	}

	if !strings.HasPrefix(absFullPath, baseAssetDir) {
		return "", fmt.Errorf("invalid path: access denied for '%s'", relativePath)
	}
	return absFullPath, nil
}

// Exists reports whether the relative path resolves to an existing file
func (ls *LocalStorage) Exists(assetType AssetType, relativePath string) bool {
	fullPath, err := ls.FullPath(assetType, relativePath)
	if err != nil {
		return false
	}
	info, err := os.Stat(fullPath)
	return err == nil && !info.IsDir()
}

// Delete removes an asset file, ignoring "not exist" errors
func (ls *LocalStorage) Delete(assetType AssetType, relativePath string) error {
	fullPath, err := ls.FullPath(assetType, relativePath)
	if err != nil {
		return err
	}
	err = os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete asset '%s': %w", relativePath, err)
	}
	if err == nil {
		log.Printf("media.store: Deleted asset %s", fullPath)
	}
	return nil
}
