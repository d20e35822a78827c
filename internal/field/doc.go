// Package field stores the time series of 1D field snapshots produced by a
// simulation run.
//
// A [History] maps an ever-growing absolute time index onto a physically
// bounded storage window:
//
//   - [History.Append]: commit the row for the next time step
//   - [History.At]: random access by absolute time index
//   - [History.Cell]: one spatial cell across the retained window
//
// While the current time index is at most the retention bound, the window
// grows with every append (warm-up). Once the index exceeds the bound, each
// append evicts exactly the oldest row, so the window holds the rows for
// absolute times [current-memory, current] from then on.
//
// # Thread Safety
//
// History instances are NOT thread-safe. The simulation driver is the sole
// writer; see [github.com/san-kum/stringsim/internal/sim].
package field
