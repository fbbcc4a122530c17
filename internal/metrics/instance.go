package metrics

import (
	"errors"
	"log/slog"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	gopsproc "github.com/shirou/gopsutil/v4/process"
)

// InstanceCollector reports resource usage of one running instance,
// sampled with gopsutil on every scrape.
type InstanceCollector struct {
	name string
	pid  int32

	cpu     *prometheus.Desc
	rss     *prometheus.Desc
	threads *prometheus.Desc
	fds     *prometheus.Desc
}

// NewInstanceCollector creates a collector for the process pid, labelled with name.
func NewInstanceCollector(name string, pid int) *InstanceCollector {
	labels := prometheus.Labels{"name": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("sssd", "instance", metric), help, nil, labels)
	}
	return &InstanceCollector{
		name:    name,
		pid:     int32(pid),
		cpu:     desc("cpu_percent", "CPU usage of the instance in percent."),
		rss:     desc("memory_rss_bytes", "Resident set size of the instance."),
		threads: desc("threads", "Number of threads of the instance."),
		fds:     desc("open_fds", "Number of open file descriptors of the instance (Unix only)."),
	}
}

func (c *InstanceCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.cpu
	ch <- c.rss
	ch <- c.threads
	ch <- c.fds
}

func (c *InstanceCollector) Collect(ch chan<- prometheus.Metric) {
	p, err := gopsproc.NewProcess(c.pid)
	if err != nil {
		slog.Debug("instance metrics unavailable", "name", c.name, "pid", c.pid, "error", err)
		return
	}
	if v, err := p.CPUPercent(); err == nil {
		ch <- prometheus.MustNewConstMetric(c.cpu, prometheus.GaugeValue, v)
	}
	if mi, err := p.MemoryInfo(); err == nil {
		ch <- prometheus.MustNewConstMetric(c.rss, prometheus.GaugeValue, float64(mi.RSS))
	}
	if n, err := p.NumThreads(); err == nil {
		ch <- prometheus.MustNewConstMetric(c.threads, prometheus.GaugeValue, float64(n))
	}
	if runtime.GOOS != "windows" {
		if n, err := p.NumFDs(); err == nil {
			ch <- prometheus.MustNewConstMetric(c.fds, prometheus.GaugeValue, float64(n))
		}
	}
}

// RegisterInstance registers an InstanceCollector for pid. Registering the
// same name twice is not an error.
func RegisterInstance(r prometheus.Registerer, name string, pid int) error {
	if err := r.Register(NewInstanceCollector(name, pid)); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return nil
		}
		return err
	}
	return nil
}
