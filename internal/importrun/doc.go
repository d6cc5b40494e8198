// Package importrun drives the transformers over an exported project.
//
// A Runner transforms one entity kind at a time in import order. Within a
// pass records are transformed concurrently by a bounded worker pool and
// every produced record goes to a Persister. The new ids of projects, issues
// and change groups are added to the mapping table when the pass finishes,
// so later passes can resolve references to them.
package importrun
