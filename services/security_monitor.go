package services

import (
	"log"
	"sync"
	"time"

	"client_case_tracker/config"
)

const (
	failedLoginWindow    = 10 * time.Minute
	failedLoginThreshold = 5
	alertCooldown        = time.Hour
	maxAlertHistory      = 100
)

// SecurityEventMonitor aggregates failed logins per IP and raises alerts.
// It only observes; it never blocks a login attempt.
type SecurityEventMonitor struct {
	mu           sync.Mutex
	failedLogins map[string][]time.Time // Map of IP -> list of failure timestamps
	alertedIPs   map[string]time.Time   // Map of IP -> last alert time
	alerts       []SecurityAlert        // History of alerts, newest first
	notify       func(SecurityAlert)
	now          func() time.Time
}

// SecurityAlert represents a triggered security alert
type SecurityAlert struct {
	Timestamp time.Time
	IP        string
	Reason    string
	Level     string // "WARNING", "CRITICAL"
}

// Monitor is the process-wide monitor used by the login handler
var Monitor = NewSecurityEventMonitor(nil)

// InitSecurityMonitor replaces Monitor with one that emails alerts to the configured admin
func InitSecurityMonitor(cfg *config.Config) {
	Monitor = NewSecurityEventMonitor(func(alert SecurityAlert) {
		if cfg.AdminEmail == "" {
			return
		}
		SendEmailAsync(cfg, BuildSecurityAlertEmail(cfg.AdminEmail, alert))
	})
}

// NewSecurityEventMonitor creates a monitor; notify may be nil
func NewSecurityEventMonitor(notify func(SecurityAlert)) *SecurityEventMonitor {
	return &SecurityEventMonitor{
		failedLogins: make(map[string][]time.Time),
		alertedIPs:   make(map[string]time.Time),
		alerts:       make([]SecurityAlert, 0),
		notify:       notify,
		now:          time.Now,
	}
}

// TrackFailedLogin records a failed login attempt and checks for threshold
func (m *SecurityEventMonitor) TrackFailedLogin(ip string) {
	m.mu.Lock()

	now := m.now()
	m.pruneLocked(now)

	m.failedLogins[ip] = append(m.failedLogins[ip], now)
	if len(m.failedLogins[ip]) < failedLoginThreshold {
		m.mu.Unlock()
		return
	}

	alert, raised := m.triggerAlertLocked(ip, "Multiple failed logins detected", now)
	m.mu.Unlock()

	if raised && m.notify != nil {
		m.notify(alert)
	}
}

// triggerAlertLocked records an alert unless this IP was alerted within the cooldown
func (m *SecurityEventMonitor) triggerAlertLocked(ip, reason string, now time.Time) (SecurityAlert, bool) {
	if lastAlert, alerted := m.alertedIPs[ip]; alerted && now.Sub(lastAlert) < alertCooldown {
		return SecurityAlert{}, false
	}
	m.alertedIPs[ip] = now

	alert := SecurityAlert{
		Timestamp: now,
		IP:        ip,
		Reason:    reason,
		Level:     "CRITICAL",
	}
	m.alerts = append([]SecurityAlert{alert}, m.alerts...)
	if len(m.alerts) > maxAlertHistory {
		m.alerts = m.alerts[:maxAlertHistory]
	}

	log.Printf("[SECURITY ALERT] %s from IP: %s", reason, ip)
	return alert, true
}

// pruneLocked drops attempts outside the window and expired alert cooldowns
func (m *SecurityEventMonitor) pruneLocked(now time.Time) {
	windowStart := now.Add(-failedLoginWindow)
	for ip, attempts := range m.failedLogins {
		kept := attempts[:0]
		for _, t := range attempts {
			if t.After(windowStart) {
				kept = append(kept, t)
			}
		}
		if len(kept) == 0 {
			delete(m.failedLogins, ip)
		} else {
			m.failedLogins[ip] = kept
		}
	}
	for ip, lastAlert := range m.alertedIPs {
		if now.Sub(lastAlert) >= alertCooldown {
			delete(m.alertedIPs, ip)
		}
	}
}

// GetRecentAlerts returns a copy of recent alerts
func (m *SecurityEventMonitor) GetRecentAlerts() []SecurityAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	alertsCopy := make([]SecurityAlert, len(m.alerts))
	copy(alertsCopy, m.alerts)
	return alertsCopy
}
