package catalog

import (
	"strings"
	"time"
)

// Catalog is an immutable, indexed set of records.
type Catalog struct {
	Records  []Record
	LoadedAt time.Time
	Source   string
	Report   Report

	byHost map[string][]Record // lowercase host -> rows
	hosts  []string
}

// New indexes records by host.
func New(records []Record, source string) *Catalog {
	c := &Catalog{
		Records:  records,
		LoadedAt: time.Now(),
		Source:   source,
		byHost:   make(map[string][]Record),
	}
	for _, r := range records {
		key := strings.ToLower(r.Hostname())
		if _, ok := c.byHost[key]; !ok {
			c.hosts = append(c.hosts, r.Hostname())
		}
		c.byHost[key] = append(c.byHost[key], r)
	}
	return c
}

// Len returns the number of planet rows.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Records)
}

// Hosts returns host names in first-seen order.
func (c *Catalog) Hosts() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.hosts))
	copy(out, c.hosts)
	return out
}

// Lookup returns the rows of a host, matched case-insensitively.
func (c *Catalog) Lookup(hostname string) []Record {
	if c == nil {
		return nil
	}
	return c.byHost[strings.ToLower(hostname)]
}

// Has reports whether the catalog knows the host.
func (c *Catalog) Has(hostname string) bool {
	return len(c.Lookup(hostname)) > 0
}
