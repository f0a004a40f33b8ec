/*
Package sqldataset provides a population of individuals stored on an
SQL database that trees can be grown from.

The population uses 4 database tables:
  - labels, with the ancestry labels in universe order
  - variants, with the variants in feature order
  - individuals, with the id and label of every individual
  - calls, with a row for every variant an individual carries

Label counts for paths are computed by the database, with an EXISTS
or NOT EXISTS condition on the calls table for every criterion on the
path. Database specifics are provided by an Adapter.
*/
package sqldataset
