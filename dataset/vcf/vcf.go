/*
Package vcf reads the variants carried by individuals from files in
the Variant Call Format.

Every data line of a VCF file is a variant, identified here as
CHROM:START:END where START is the 0-based position of its reference
allele and END is START plus the length of the reference allele. An
individual carries a variant unless every allele in its GT call is
the reference allele.
*/
package vcf

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pbanos/ancestree/feature"
	"github.com/pkg/errors"
)

/*
Region is a range of positions on a chromosome. It contains the
positions over Start and up to End, which is also how 0-based
half-open intervals of reference alleles are expressed in 1-based
VCF positions. Chromosome names are compared without any "chr"
prefix.
*/
type Region struct {
	Chromosome string
	Start      int
	End        int
}

// Contains returns whether the given 1-based position on
// the given chromosome falls in the region.
func (r Region) Contains(chromosome string, pos int) bool {
	return trimChr(r.Chromosome) == trimChr(chromosome) && pos > r.Start && pos <= r.End
}

func (r Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.Chromosome, r.Start, r.End)
}

/*
ParseRegion takes a string in the CHROM:START-END form and
returns the Region it represents.
*/
func ParseRegion(s string) (Region, error) {
	i := strings.LastIndex(s, ":")
	if i <= 0 {
		return Region{}, errors.Errorf("invalid region %q: expected CHROM:START-END", s)
	}
	bounds := strings.SplitN(s[i+1:], "-", 2)
	if len(bounds) != 2 {
		return Region{}, errors.Errorf("invalid region %q: expected CHROM:START-END", s)
	}
	start, err := strconv.Atoi(bounds[0])
	if err != nil {
		return Region{}, errors.Wrapf(err, "invalid region %q start", s)
	}
	end, err := strconv.Atoi(bounds[1])
	if err != nil {
		return Region{}, errors.Wrapf(err, "invalid region %q end", s)
	}
	if end < start {
		return Region{}, errors.Errorf("invalid region %q: end before start", s)
	}
	return Region{s[:i], start, end}, nil
}

/*
Genotypes holds the variants read from a VCF file and, for every
individual on it, the set of those variants it carries.
*/
type Genotypes struct {
	Individuals []string
	Variants    []feature.Feature
	Calls       map[string]feature.Set
}

/*
ReadFile takes the path to a VCF file, optionally gzipped if its name
ends in .gz, and regions, and returns the Genotypes read from it. When
regions are given, only variants in any of them are read.
*/
func ReadFile(path string, regions ...Region) (*Genotypes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		defer gzr.Close()
		r = gzr
	}
	g, err := Read(r, regions...)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return g, nil
}

// Positions of the fixed columns of every VCF data line.
const (
	chromColumn = iota
	posColumn
	idColumn
	refColumn
	altColumn
	qualColumn
	filterColumn
	infoColumn
	formatColumn
)

// linesPerChunk is the number of data lines loaded on a dataframe at a time.
const linesPerChunk = 4096

/*
Read takes a reader of VCF content and regions and returns the
Genotypes read from it. When regions are given, only variants in any
of them are read.
*/
func Read(r io.Reader, regions ...Region) (*Genotypes, error) {
	vr := &reader{
		br:      bufio.NewReader(r),
		regions: regions,
		seen:    make(map[feature.Feature]bool),
		g:       &Genotypes{Calls: make(map[string]feature.Set)},
	}
	if err := vr.readHeader(); err != nil {
		return nil, err
	}
	for {
		c, err := vr.readChunk()
		if err != nil && err != io.EOF {
			return nil, err
		}
		if len(c.lines) > 0 {
			if lerr := vr.load(c); lerr != nil {
				return nil, lerr
			}
		}
		if err == io.EOF {
			return vr.g, nil
		}
	}
}

type reader struct {
	br      *bufio.Reader
	line    int
	columns []string
	regions []Region
	seen    map[feature.Feature]bool
	g       *Genotypes
}

// chunk holds data lines along with their line numbers.
type chunk struct {
	data  bytes.Buffer
	lines []int
}

/*
readHeader skips the meta-information lines and keeps the column names
on the #CHROM line. The names after FORMAT are the individuals.
*/
func (vr *reader) readHeader() error {
	for {
		line, err := vr.br.ReadString('\n')
		if line == "" && err != nil {
			if err == io.EOF {
				return errors.New("missing #CHROM header line")
			}
			return err
		}
		vr.line++
		line = strings.TrimRight(line, "\r\n")
		switch {
		case line == "" || strings.HasPrefix(line, "##"):
			continue
		case strings.HasPrefix(line, "#"):
			vr.columns = strings.Split(line[1:], "\t")
			if len(vr.columns) <= infoColumn {
				return errors.Errorf("line %d: expected at least %d columns, got %d", vr.line, infoColumn+1, len(vr.columns))
			}
			if len(vr.columns) > formatColumn+1 {
				vr.g.Individuals = vr.columns[formatColumn+1:]
			}
			for _, id := range vr.g.Individuals {
				vr.g.Calls[id] = feature.NewSet()
			}
			return nil
		default:
			return errors.Errorf("line %d: data line before header", vr.line)
		}
	}
}

// readChunk reads up to linesPerChunk data lines. It returns
// io.EOF along with the last lines once the input is exhausted.
func (vr *reader) readChunk() (*chunk, error) {
	c := &chunk{}
	for len(c.lines) < linesPerChunk {
		line, err := vr.br.ReadString('\n')
		if line != "" {
			vr.line++
			line = strings.TrimRight(line, "\r\n")
			if line != "" && !strings.HasPrefix(line, "#") {
				c.data.WriteString(line)
				c.data.WriteByte('\n')
				c.lines = append(c.lines, vr.line)
			}
		}
		if err != nil {
			return c, err
		}
	}
	return c, nil
}

func (vr *reader) load(c *chunk) error {
	df := dataframe.ReadCSV(&c.data,
		dataframe.WithDelimiter('\t'),
		dataframe.WithLazyQuotes(true),
		dataframe.HasHeader(false),
		dataframe.Names(vr.columns...),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(map[string]series.Type{vr.columns[posColumn]: series.Int}),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return errors.Wrapf(df.Err, "lines %d-%d", c.lines[0], c.lines[len(c.lines)-1])
	}
	for i := 0; i < df.Nrow(); i++ {
		if err := vr.add(df, i); err != nil {
			return errors.Wrapf(err, "line %d", c.lines[i])
		}
	}
	return nil
}

// add records the variant on row i of the dataframe and its carriers.
func (vr *reader) add(df dataframe.DataFrame, i int) error {
	pos, err := df.Elem(i, posColumn).Int()
	if err != nil {
		return errors.Wrapf(err, "parsing position %q", df.Elem(i, posColumn).String())
	}
	chromosome := df.Elem(i, chromColumn).String()
	if !inRegions(vr.regions, chromosome, pos) {
		return nil
	}
	start := pos - 1
	v := feature.Feature(fmt.Sprintf("%s:%d:%d", chromosome, start, start+len(df.Elem(i, refColumn).String())))
	if vr.seen[v] {
		v = feature.Feature(fmt.Sprintf("%s:%s", v, df.Elem(i, altColumn).String()))
	}
	if vr.seen[v] {
		return errors.Errorf("duplicate variant %s", v)
	}
	vr.seen[v] = true
	vr.g.Variants = append(vr.g.Variants, v)
	if len(vr.g.Individuals) == 0 {
		return nil
	}
	format := df.Elem(i, formatColumn).String()
	gt := genotypeIndex(format)
	if gt < 0 {
		return errors.Errorf("no GT in format %q", format)
	}
	for j, id := range vr.g.Individuals {
		if carries(df.Elem(i, formatColumn+1+j).String(), gt) {
			vr.g.Calls[id].Add(v)
		}
	}
	return nil
}

func inRegions(regions []Region, chromosome string, pos int) bool {
	if len(regions) == 0 {
		return true
	}
	for _, r := range regions {
		if r.Contains(chromosome, pos) {
			return true
		}
	}
	return false
}

func genotypeIndex(format string) int {
	for i, key := range strings.Split(format, ":") {
		if key == "GT" {
			return i
		}
	}
	return -1
}

// carries returns whether any allele in the GT subfield
// of the call is neither the reference nor missing.
func carries(call string, gt int) bool {
	subfields := strings.Split(call, ":")
	if gt >= len(subfields) {
		return false
	}
	for _, allele := range strings.FieldsFunc(subfields[gt], func(r rune) bool { return r == '|' || r == '/' }) {
		if allele != "0" && allele != "." {
			return true
		}
	}
	return false
}

func trimChr(chromosome string) string {
	return strings.TrimPrefix(strings.ToLower(chromosome), "chr")
}
