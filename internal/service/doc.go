// Package service implements the application's use cases over the store and
// platform layers: card management, browsing, statistics, JSON import with
// duplicate detection, backup/restore, and document export.
package service
