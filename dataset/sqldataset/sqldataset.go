package sqldataset

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/dataset"
	"github.com/pbanos/ancestree/feature"
	"github.com/pkg/errors"
)

// Error is the type of the errors of the package.
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrPopulated is returned when writing a population
// on a database that already holds one.
const ErrPopulated = Error("database already holds a population")

/*
Dataset is a population stored on an SQL database. It provides the
label counts of any of its subpopulations, so it can be used to grow
trees.
*/
type Dataset struct {
	adapter  Adapter
	builder  sq.StatementBuilderType
	labels   *counts.Universe
	features []feature.Feature
}

/*
Open takes a context and an Adapter and returns the Dataset stored on
the adapter database, ensuring its tables exist. An error is returned
if the tables cannot be created or read.
*/
func Open(ctx context.Context, a Adapter) (*Dataset, error) {
	if err := a.CreateTables(ctx); err != nil {
		return nil, errors.Wrap(err, "creating tables")
	}
	d := &Dataset{
		adapter: a,
		builder: sq.StatementBuilder.PlaceholderFormat(a.PlaceholderFormat()),
	}
	if err := d.load(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Labels returns the label universe of the stored population.
func (d *Dataset) Labels() *counts.Universe {
	return d.labels
}

// Features returns the variants of the stored population.
func (d *Dataset) Features() []feature.Feature {
	return append([]feature.Feature(nil), d.features...)
}

// Close closes the underlying database.
func (d *Dataset) Close() error {
	return d.adapter.DB().Close()
}

func (d *Dataset) load(ctx context.Context) error {
	labels, err := d.column(ctx, d.builder.Select("name").From("labels").OrderBy("position"))
	if err != nil {
		return errors.Wrap(err, "reading labels")
	}
	d.labels, err = counts.NewUniverse(labels...)
	if err != nil {
		return errors.Wrap(err, "reading labels")
	}
	variants, err := d.column(ctx, d.builder.Select("id").From("variants").OrderBy("position"))
	if err != nil {
		return errors.Wrap(err, "reading variants")
	}
	d.features = make([]feature.Feature, 0, len(variants))
	for _, v := range variants {
		d.features = append(d.features, feature.Feature(v))
	}
	return nil
}

func (d *Dataset) column(ctx context.Context, q sq.SelectBuilder) ([]string, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := d.adapter.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []string
	for rows.Next() {
		var s string
		if err = rows.Scan(&s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

/*
Write takes a context and an in-memory population and stores it on the
database in a single transaction. ErrPopulated is returned if the
database already holds a population.
*/
func (d *Dataset) Write(ctx context.Context, pop *dataset.Dataset) error {
	if d.labels.Len() > 0 {
		return ErrPopulated
	}
	tx, err := d.adapter.DB().BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	if err = d.writeRows(ctx, tx, pop); err != nil {
		tx.Rollback()
		return err
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing population")
	}
	return d.load(ctx)
}

func (d *Dataset) writeRows(ctx context.Context, tx *sql.Tx, pop *dataset.Dataset) error {
	var labels, variants, individuals, calls [][]interface{}
	for i, l := range pop.Labels().Labels() {
		labels = append(labels, []interface{}{i, l})
	}
	for i, v := range pop.Features() {
		variants = append(variants, []interface{}{i, string(v)})
	}
	for i, ind := range pop.Individuals() {
		individuals = append(individuals, []interface{}{ind.ID, i, ind.Label})
		for _, v := range ind.Variants.Sorted() {
			calls = append(calls, []interface{}{ind.ID, string(v)})
		}
	}
	for _, t := range []struct {
		name    string
		columns []string
		rows    [][]interface{}
	}{
		{"labels", []string{"position", "name"}, labels},
		{"variants", []string{"position", "id"}, variants},
		{"individuals", []string{"id", "position", "label"}, individuals},
		{"calls", []string{"individual_id", "variant_id"}, calls},
	} {
		if err := d.insert(ctx, tx, t.name, t.columns, t.rows); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dataset) insert(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]interface{}) error {
	size := d.adapter.MaxRowsPerInsert()
	for start := 0; start < len(rows); start += size {
		ib := d.builder.Insert(table).Columns(columns...)
		for _, r := range rows[start:min(start+size, len(rows))] {
			ib = ib.Values(r...)
		}
		query, args, err := ib.ToSql()
		if err != nil {
			return errors.Wrapf(err, "building insert into %s", table)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "inserting into %s", table)
		}
	}
	return nil
}

/*
Population takes a context and returns the stored population read
into memory.
*/
func (d *Dataset) Population(ctx context.Context) (*dataset.Dataset, error) {
	query, args, err := d.builder.Select("id", "label").From("individuals").OrderBy("position").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := d.adapter.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "reading individuals")
	}
	var individuals []dataset.Individual
	index := make(map[string]int)
	for rows.Next() {
		ind := dataset.Individual{Variants: feature.NewSet()}
		if err = rows.Scan(&ind.ID, &ind.Label); err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "reading individuals")
		}
		index[ind.ID] = len(individuals)
		individuals = append(individuals, ind)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "reading individuals")
	}
	query, args, err = d.builder.Select("individual_id", "variant_id").From("calls").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err = d.adapter.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "reading calls")
	}
	defer rows.Close()
	for rows.Next() {
		var id, variant string
		if err = rows.Scan(&id, &variant); err != nil {
			return nil, errors.Wrap(err, "reading calls")
		}
		i, ok := index[id]
		if !ok {
			return nil, errors.Errorf("call of %s for unknown individual %s", variant, id)
		}
		individuals[i].Variants.Add(feature.Feature(variant))
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "reading calls")
	}
	return dataset.New(d.labels, d.features, individuals)
}

// RootCounts returns the label counts of the whole population.
func (d *Dataset) RootCounts(ctx context.Context) (*counts.Table, error) {
	return d.count(ctx, d.countQuery(feature.NewPath()))
}

// CountsWith returns the label counts of the individuals that
// satisfy the path and carry the variant.
func (d *Dataset) CountsWith(ctx context.Context, p feature.Path, f feature.Feature) (*counts.Table, error) {
	return d.count(ctx, d.countQuery(p).Where(condition(f, feature.With)))
}

// CountsFor returns the label counts of the individuals that satisfy the path.
func (d *Dataset) CountsFor(ctx context.Context, p feature.Path) (*counts.Table, error) {
	return d.count(ctx, d.countQuery(p))
}

func (d *Dataset) countQuery(p feature.Path) sq.SelectBuilder {
	q := d.builder.Select("i.label", "COUNT(*)").From("individuals i").GroupBy("i.label")
	for _, c := range p.Criteria() {
		q = q.Where(condition(c.Feature, c.Direction))
	}
	return q
}

func condition(f feature.Feature, dir feature.Direction) sq.Sqlizer {
	exists := "EXISTS (SELECT 1 FROM calls c WHERE c.individual_id = i.id AND c.variant_id = ?)"
	if dir == feature.Without {
		exists = "NOT " + exists
	}
	return sq.Expr(exists, string(f))
}

func (d *Dataset) count(ctx context.Context, q sq.SelectBuilder) (*counts.Table, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := d.adapter.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "counting labels")
	}
	defer rows.Close()
	result := make(map[string]int)
	for rows.Next() {
		var label string
		var n int
		if err = rows.Scan(&label, &n); err != nil {
			return nil, errors.Wrap(err, "counting labels")
		}
		result[label] = n
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "counting labels")
	}
	return counts.NewTable(d.labels, result)
}
