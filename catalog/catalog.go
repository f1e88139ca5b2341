package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"storefront-service/config"
	"storefront-service/models"
)

//go:embed products_meat.json
var embeddedProducts []byte

// Catalog 静态产品目录：启动时加载一次，会话期间不再变化
type Catalog struct {
	products []models.Product
	byID     map[int]models.Product
}

// Load 按配置选择数据源：MySQL > 外部 JSON 文件 > 内置数据
func Load(cfg *config.Config) (*Catalog, error) {
	switch {
	case cfg.CatalogDSN != "":
		return loadFromMySQL(cfg.CatalogDSN)
	case cfg.CatalogFile != "":
		data, err := os.ReadFile(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		return fromJSON(data)
	default:
		return fromJSON(embeddedProducts)
	}
}

func fromJSON(data []byte) (*Catalog, error) {
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return newCatalog(products), nil
}

func newCatalog(products []models.Product) *Catalog {
	byID := make(map[int]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}
}

// Products 返回全部产品的副本
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) FindByID(id int) (models.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// FilterOptions 空字符串或 "all" 表示跳过该维度
type FilterOptions struct {
	Search       string
	Category     string
	Subcategory  string
	Availability string
}

// Filter 线性过滤：名称子串匹配（忽略大小写），其余维度精确匹配
func (c *Catalog) Filter(opts FilterOptions) []models.Product {
	out := make([]models.Product, 0, len(c.products))
	search := strings.ToLower(opts.Search)
	for _, p := range c.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if !matches(opts.Category, p.Category) {
			continue
		}
		if !matches(opts.Subcategory, p.Subcategory) {
			continue
		}
		if !matches(opts.Availability, p.Availability) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(filter, value string) bool {
	return filter == "" || filter == "all" || filter == value
}

// FilterValues 从数据中派生可用的筛选项
type FilterValues struct {
	Categories     []string `json:"categories"`
	Subcategories  []string `json:"subcategories"`
	Availabilities []string `json:"availabilities"`
}

func (c *Catalog) FilterValues() FilterValues {
	return FilterValues{
		Categories:     distinct(c.products, func(p models.Product) string { return p.Category }),
		Subcategories:  distinct(c.products, func(p models.Product) string { return p.Subcategory }),
		Availabilities: []string{models.AvailabilityAvailable, models.AvailabilityLow, models.AvailabilityUnavailable},
	}
}

func distinct(products []models.Product, key func(models.Product) string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(products))
	for _, p := range products {
		k := key(p)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
