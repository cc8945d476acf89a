package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const scrapeTimeout = 5 * time.Second

// StoreCollector samples dashboard aggregates from the store at scrape time.
type StoreCollector struct {
	source StatsSource

	employees   *prometheus.Desc
	departments *prometheus.Desc
	unassigned  *prometheus.Desc
	today       *prometheus.Desc
	headcount   *prometheus.Desc
}

// NewStoreCollector panics when source is nil.
func NewStoreCollector(source StatsSource) *StoreCollector {
	if source == nil {
		panic("metrics: store collector requires a stats source")
	}
	return &StoreCollector{
		source: source,
		employees: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "employees"),
			"Employees currently stored.", nil, nil),
		departments: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "departments"),
			"Departments currently stored.", nil, nil),
		unassigned: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "unassigned_employees"),
			"Employees without a department.", nil, nil),
		today: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "availability_today"),
			"Availability entries dated today, by status.", []string{"status"}, nil),
		headcount: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "department_employees"),
			"Employees assigned to each department.", []string{"department_id", "department"}, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.employees
	ch <- c.departments
	ch <- c.unassigned
	ch <- c.today
	ch <- c.headcount
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
	defer cancel()

	stats, err := c.source.Stats(ctx)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.employees, err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.employees, prometheus.GaugeValue, float64(stats.TotalEmployees))
	ch <- prometheus.MustNewConstMetric(c.departments, prometheus.GaugeValue, float64(stats.TotalDepartments))
	ch <- prometheus.MustNewConstMetric(c.unassigned, prometheus.GaugeValue, float64(stats.UnassignedEmployees))
	ch <- prometheus.MustNewConstMetric(c.today, prometheus.GaugeValue, float64(stats.AvailableToday), "available")
	ch <- prometheus.MustNewConstMetric(c.today, prometheus.GaugeValue, float64(stats.UnavailableToday), "unavailable")
	for _, row := range stats.Departments {
		ch <- prometheus.MustNewConstMetric(c.headcount, prometheus.GaugeValue, float64(row.Employees), row.DepartmentID, row.Name)
	}
}
