package cron

import (
	"ContentTracker/internal/api/config"
	"ContentTracker/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine         *cron.Cron
	cfg            config.CronConfig
	youtubeSyncJob *job.YouTubeSyncJob
}

func NewCronManager(cfg config.CronConfig, youtubeSyncJob *job.YouTubeSyncJob) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds()),
		cfg:            cfg,
		youtubeSyncJob: youtubeSyncJob,
	}
}

// RegisterJobs 注册定时任务，未启用时不注册
func (s *Manager) RegisterJobs() error {
	if !s.cfg.Enable {
		log.Info("Cron YouTube sync disabled")
		return nil
	}
	if _, err := s.engine.AddJob(s.cfg.Spec, s.youtubeSyncJob); err != nil {
		return err
	}
	log.Info("Cron YouTube sync registered", "spec", s.cfg.Spec)
	return nil
}

// Entries 已注册的任务数
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}

// InitCron 注册并启动全部定时任务
func InitCron(mgr *Manager) error {
	log.Info("Cron Jobs starting...", "enabled", mgr.cfg.Enable)
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	return nil
}
