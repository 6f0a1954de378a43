// Package backup implements the backup gate and the export/import round
// trip that is the disaster-recovery contract of the whole system.
//
// JSON export is canonical and restorable; CSV and ICS exports are one-way
// report formats. The gate signals when more than seven days have passed
// since the last export or import.
package backup
