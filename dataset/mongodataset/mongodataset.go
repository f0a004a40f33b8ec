/*
Package mongodataset provides a population of individuals stored on a
MongoDB database that trees can be grown from.

Individuals are stored on the individuals collection as documents
with their id, label and the list of variants they carry. The label
universe and the variant list are stored on a single document of the
metadata collection. Label counts for paths are computed by the
database with an aggregation pipeline.
*/
package mongodataset

import (
	"context"
	"fmt"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/dataset"
	"github.com/pbanos/ancestree/feature"
	"github.com/pkg/errors"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const (
	individualsCollectionName = "individuals"
	metadataCollectionName    = "metadata"
	metadataID                = "population"
)

// Error is the type of the errors of the package.
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrPopulated is returned when writing a population
// on a database that already holds one.
const ErrPopulated = Error("database already holds a population")

type individualDoc struct {
	ID       string   `bson:"_id"`
	Position int      `bson:"position"`
	Label    string   `bson:"label"`
	Variants []string `bson:"variants"`
}

type metadataDoc struct {
	ID       string   `bson:"_id"`
	Labels   []string `bson:"labels"`
	Variants []string `bson:"variants"`
}

/*
Dataset is a population stored on a MongoDB database. It provides the
label counts of any of its subpopulations, so it can be used to grow
trees.
*/
type Dataset struct {
	session  *mgo.Session
	labels   *counts.Universe
	features []feature.Feature
}

/*
Open takes a context and a MongoDB database session and returns the
Dataset stored on the default database for that session, or an error
if its indexes cannot be ensured or its metadata read.
*/
func Open(ctx context.Context, session *mgo.Session) (*Dataset, error) {
	mds := &Dataset{session: session}
	if err := mds.ensureIndexes(); err != nil {
		return nil, err
	}
	if err := mds.load(); err != nil {
		return nil, err
	}
	return mds, nil
}

// Labels returns the label universe of the stored population.
func (mds *Dataset) Labels() *counts.Universe {
	return mds.labels
}

// Features returns the variants of the stored population.
func (mds *Dataset) Features() []feature.Feature {
	return append([]feature.Feature(nil), mds.features...)
}

func (mds *Dataset) load() error {
	var md metadataDoc
	err := mds.metadataCollection().FindId(metadataID).One(&md)
	if err != nil && err != mgo.ErrNotFound {
		return errors.Wrap(err, "reading population metadata")
	}
	mds.labels, err = counts.NewUniverse(md.Labels...)
	if err != nil {
		return errors.Wrap(err, "reading population metadata")
	}
	mds.features = make([]feature.Feature, 0, len(md.Variants))
	for _, v := range md.Variants {
		mds.features = append(mds.features, feature.Feature(v))
	}
	return nil
}

/*
Write takes a context and an in-memory population and stores it on the
database. ErrPopulated is returned if the database already holds a
population.
*/
func (mds *Dataset) Write(ctx context.Context, pop *dataset.Dataset) error {
	if mds.labels.Len() > 0 {
		return ErrPopulated
	}
	docs := make([]interface{}, 0, pop.Len())
	for i, ind := range pop.Individuals() {
		doc := individualDoc{ID: ind.ID, Position: i, Label: ind.Label, Variants: []string{}}
		for _, v := range ind.Variants.Sorted() {
			doc.Variants = append(doc.Variants, string(v))
		}
		docs = append(docs, doc)
	}
	if len(docs) > 0 {
		if err := mds.individualsCollection().Insert(docs...); err != nil {
			return errors.Wrap(err, "inserting individuals")
		}
	}
	md := metadataDoc{ID: metadataID, Labels: pop.Labels().Labels()}
	for _, f := range pop.Features() {
		md.Variants = append(md.Variants, string(f))
	}
	if err := mds.metadataCollection().Insert(md); err != nil {
		return errors.Wrap(err, "inserting population metadata")
	}
	return mds.load()
}

/*
Population takes a context and returns the stored population read
into memory.
*/
func (mds *Dataset) Population(ctx context.Context) (*dataset.Dataset, error) {
	iter := mds.individualsCollection().Find(nil).Sort("position").Iter()
	defer iter.Close()
	var individuals []dataset.Individual
	var doc individualDoc
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ind := dataset.Individual{ID: doc.ID, Label: doc.Label, Variants: feature.NewSet()}
		for _, v := range doc.Variants {
			ind.Variants.Add(feature.Feature(v))
		}
		individuals = append(individuals, ind)
		doc = individualDoc{}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "reading individuals")
	}
	return dataset.New(mds.labels, mds.features, individuals)
}

// RootCounts returns the label counts of the whole population.
func (mds *Dataset) RootCounts(ctx context.Context) (*counts.Table, error) {
	return mds.count(ctx, feature.NewPath())
}

// CountsWith returns the label counts of the individuals that
// satisfy the path and carry the variant.
func (mds *Dataset) CountsWith(ctx context.Context, p feature.Path, f feature.Feature) (*counts.Table, error) {
	return mds.count(ctx, p.Extend(f, feature.With))
}

// CountsFor returns the label counts of the individuals that satisfy the path.
func (mds *Dataset) CountsFor(ctx context.Context, p feature.Path) (*counts.Table, error) {
	return mds.count(ctx, p)
}

func (mds *Dataset) count(ctx context.Context, p feature.Path) (*counts.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pipeline := []bson.M{
		{"$match": query(p)},
		{"$group": bson.M{"_id": "$label", "count": bson.M{"$sum": 1}}},
	}
	iter := mds.individualsCollection().Pipe(pipeline).Iter()
	defer iter.Close()
	var doc bson.M
	result := make(map[string]int)
	for iter.Next(&doc) {
		count, ok := doc["count"].(int)
		if !ok {
			return nil, fmt.Errorf("counting labels: mongo aggregation query returned a %T instead of an int as count", doc["count"])
		}
		result[fmt.Sprintf("%v", doc["_id"])] = count
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "counting labels")
	}
	return counts.NewTable(mds.labels, result)
}

// query returns the filter for the individuals satisfying the path.
func query(p feature.Path) bson.M {
	var with, without []string
	for _, c := range p.Criteria() {
		if c.Direction == feature.With {
			with = append(with, string(c.Feature))
		} else {
			without = append(without, string(c.Feature))
		}
	}
	variants := bson.M{}
	if len(with) > 0 {
		variants["$all"] = with
	}
	if len(without) > 0 {
		variants["$nin"] = without
	}
	if len(variants) == 0 {
		return bson.M{}
	}
	return bson.M{"variants": variants}
}

func (mds *Dataset) ensureIndexes() error {
	for _, key := range []string{"variants", "label", "position"} {
		index := mgo.Index{
			Key:        []string{key},
			Background: true,
		}
		if err := mds.individualsCollection().EnsureIndex(index); err != nil {
			return errors.Wrapf(err, "ensuring index on %s", key)
		}
	}
	return nil
}

func (mds *Dataset) individualsCollection() *mgo.Collection {
	return mds.session.DB("").C(individualsCollectionName)
}

func (mds *Dataset) metadataCollection() *mgo.Collection {
	return mds.session.DB("").C(metadataCollectionName)
}
