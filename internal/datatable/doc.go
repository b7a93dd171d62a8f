// Package datatable implements the state behind the admin tables: row
// selection, sort intents, the pagination window, and the façade that
// screens talk to.
//
// The table never sorts or filters the rows it is given. It records what
// the user asked for and notifies subscribers, who re-supply data (or a
// DataProvider through a Controller does it for them). The only
// transformation the table performs is slicing the current page out of
// locally held data.
package datatable
