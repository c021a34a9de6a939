// Package scanner sweeps every host of an IPv4 subnet with a bounded pool of
// probes and folds the successful results into an inventory.
//
// Status lines are written in completion order while the scan runs. The
// inventory is assembled only after every probe has finished, in ascending
// host order, so it is the same whatever the worker count.
package scanner
