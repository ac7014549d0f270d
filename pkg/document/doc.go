// Package document defines the template document wrapper and the loader
// contract used to fetch agreement templates from files, fs.FS entries or
// URLs. The concrete loader lives under internal/document/loader.
package document
