package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/astaxie/beego/logs"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// dayLogConfig is handed to the beego file adapter as JSON
type dayLogConfig struct {
	FileName string `json:"filename"`
	Level    int    `json:"level"`
	Daily    bool   `json:"daily"`  // rotation is done here, beego would start a goroutine per file
	Rotate   bool   `json:"rotate"` // same as above
	Perm     string `json:"perm"`
}

// DayLog journal split into one file per hour:
//	{dir}/{yyyy-mm-dd}/{name}.{hour}
type DayLog struct {
	dir  string
	name string
	now  func() time.Time

	curHour  int
	curDay   int
	curFile  string
	instance *logs.BeeLogger
}

// NewDayLog journal named name under dir
func NewDayLog(dir, name string) *DayLog {
	return &DayLog{
		dir:     dir,
		name:    name,
		now:     time.Now,
		curHour: -1,
	}
}

// File currently written to, empty before the first record
func (d *DayLog) File() string {
	return d.curFile
}

// reopen switches to a new file when the hour changed
func (d *DayLog) reopen() error {
	now := d.now()
	if now.Hour() == d.curHour && now.YearDay() == d.curDay && d.instance != nil {
		return nil
	}
	d.curHour = now.Hour()
	d.curDay = now.YearDay()

	dayDir := filepath.Join(d.dir, now.Format("2006-01-02"))
	if err := os.MkdirAll(dayDir, 0755); err != nil {
		return errors.Wrapf(err, "create journal dir %s", dayDir)
	}
	d.curFile = filepath.Join(dayDir, fmt.Sprintf("%s.%d", d.name, d.curHour))

	cfg, err := json.Marshal(dayLogConfig{
		FileName: d.curFile,
		Level:    logs.LevelInfo,
		Perm:     "0644",
	})
	if err != nil {
		return errors.Wrap(err, "journal config")
	}
	if d.instance != nil {
		d.instance.Reset()
	} else {
		d.instance = logs.NewLogger()
	}
	if err := d.instance.SetLogger(logs.AdapterFile, string(cfg)); err != nil {
		return errors.Wrapf(err, "open journal %s", d.curFile)
	}
	return nil
}

// Record one line
func (d *DayLog) Record(format string, v ...interface{}) error {
	if err := d.reopen(); err != nil {
		return err
	}
	d.instance.Info(format, v...)
	return nil
}

// Close the current file
func (d *DayLog) Close() {
	if d.instance != nil {
		d.instance.Flush()
		d.instance.Close()
		d.instance = nil
	}
}

type asyncMsg struct {
	flag int
	msg  string
}

// dayLogMgr a single goroutine writes every journal, beego only supports one
// file per goroutine
type dayLogMgr struct {
	logs    map[int]*DayLog
	msgs    chan asyncMsg
	done    chan struct{}
	closing sync.Once
}

var gDLMgr *dayLogMgr

const asyncChannelSize = 10000

func (g *dayLogMgr) start() {
	defer close(g.done)
	for msg := range g.msgs {
		if d, ok := g.logs[msg.flag]; ok {
			g.write(d, msg.msg)
		}
	}
	for _, d := range g.logs {
		d.Close()
	}
}

func (g *dayLogMgr) write(d *DayLog, msg string) {
	defer func() {
		if err := recover(); err != nil {
			Errorf("journal %s panic: %v", d.name, err)
		}
	}()
	if err := d.Record("%s", msg); err != nil {
		Errorf("journal %s: %v", d.name, err)
	}
}

// InitDayLog opens the journals listed in daylog.name as "{flag}-{name}"
// entries under daylog.filepath. Returns false when none is configured.
func InitDayLog(v *viper.Viper) (bool, error) {
	names := v.GetStringSlice("daylog.name")
	if len(names) == 0 {
		return false, nil
	}
	mgr := &dayLogMgr{
		logs: map[int]*DayLog{},
		msgs: make(chan asyncMsg, asyncChannelSize),
		done: make(chan struct{}),
	}
	dir := v.GetString("daylog.filepath")
	for _, cfg := range names {
		parts := strings.SplitN(cfg, "-", 2)
		if len(parts) != 2 {
			return false, errors.Errorf("daylog entry %q must look like {flag}-{name}", cfg)
		}
		flag, err := strconv.Atoi(parts[0])
		if err != nil {
			return false, errors.Wrapf(err, "daylog entry %q", cfg)
		}
		mgr.logs[flag] = NewDayLog(dir, parts[1])
	}
	gDLMgr = mgr
	go mgr.start()
	return true, nil
}

// DayLogRecord queues a line for journal flag, dropped when no journal is
// initialised
func DayLogRecord(flag int, format string, v ...interface{}) {
	if gDLMgr == nil {
		return
	}
	gDLMgr.msgs <- asyncMsg{
		flag: flag,
		msg:  fmt.Sprintf(format, v...),
	}
}

// CloseDayLog drains the queue and closes every journal
func CloseDayLog() {
	mgr := gDLMgr
	if mgr == nil {
		return
	}
	mgr.closing.Do(func() {
		close(mgr.msgs)
	})
	<-mgr.done
	gDLMgr = nil
}
