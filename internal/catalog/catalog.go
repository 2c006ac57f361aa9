// Package catalog serves the sample listings and dashboard data shown on
// the public and admin pages. The data is embedded and read-only.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultData []byte

type Property struct {
	ID          int      `yaml:"id"`
	Title       string   `yaml:"title"`
	Location    string   `yaml:"location"`
	Price       int64    `yaml:"price"`
	Bedrooms    int      `yaml:"bedrooms"`
	Bathrooms   float64  `yaml:"bathrooms"`
	Sqft        int      `yaml:"sqft"`
	Type        string   `yaml:"type"`
	Status      string   `yaml:"status"`
	Image       string   `yaml:"image"`
	Featured    bool     `yaml:"featured"`
	YearBuilt   int      `yaml:"year_built"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
}

type Agent struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
	Phone string `yaml:"phone"`
	Email string `yaml:"email"`
}

type User struct {
	ID        int    `yaml:"id"`
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	Role      string `yaml:"role"`
	Status    string `yaml:"status"`
	JoinDate  string `yaml:"join_date"`
	LastLogin string `yaml:"last_login"`
}

type Stat struct {
	Title  string `yaml:"title"`
	Value  string `yaml:"value"`
	Change string `yaml:"change"`
}

type file struct {
	Properties []Property `yaml:"properties"`
	Agent      Agent      `yaml:"agent"`
	Users      []User     `yaml:"users"`
	Stats      []Stat     `yaml:"stats"`
}

type Catalog struct {
	mu         sync.RWMutex
	properties map[int]*Property
	order      []int
	agent      Agent
	users      []User
	stats      []Stat
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultData)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	c := &Catalog{
		properties: make(map[int]*Property, len(f.Properties)),
		agent:      f.Agent,
		users:      f.Users,
		stats:      f.Stats,
	}
	for i := range f.Properties {
		p := &f.Properties[i]
		if _, dup := c.properties[p.ID]; dup {
			return nil, fmt.Errorf("duplicate property id %d", p.ID)
		}
		c.properties[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	sort.Ints(c.order)
	return c, nil
}

func (c *Catalog) All() []Property {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]Property, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, *c.properties[id])
	}
	return result
}

func (c *Catalog) Get(id int) (Property, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.properties[id]
	if !ok {
		return Property{}, false
	}
	return *p, true
}

func (c *Catalog) Featured() []Property {
	var result []Property
	for _, p := range c.All() {
		if p.Featured {
			result = append(result, p)
		}
	}
	return result
}

// Filter returns properties whose type matches propertyType, ignoring
// case. An empty or "all" type returns everything.
func (c *Catalog) Filter(propertyType string) []Property {
	propertyType = strings.TrimSpace(propertyType)
	if propertyType == "" || strings.EqualFold(propertyType, "all") {
		return c.All()
	}
	var result []Property
	for _, p := range c.All() {
		if strings.EqualFold(p.Type, propertyType) {
			result = append(result, p)
		}
	}
	return result
}

// Types lists the distinct property types in catalog order.
func (c *Catalog) Types() []string {
	seen := map[string]bool{}
	var types []string
	for _, p := range c.All() {
		if !seen[p.Type] {
			seen[p.Type] = true
			types = append(types, p.Type)
		}
	}
	return types
}

func (c *Catalog) Agent() Agent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.agent
}

func (c *Catalog) Users() []User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]User(nil), c.users...)
}

func (c *Catalog) Stats() []Stat {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Stat(nil), c.stats...)
}
