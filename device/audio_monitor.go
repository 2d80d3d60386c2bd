package device

import (
	"context"
	"encoding/json"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/yhkl-dev/EaseCLI/logging"
)

type AudioDeviceType int

const (
	AudioDeviceUnknown    AudioDeviceType = iota
	AudioDeviceBuiltIn                    // Built-in speakers
	AudioDeviceBluetooth                  // Bluetooth audio device
	AudioDeviceUSB                        // USB audio device
	AudioDeviceHDMI                       // HDMI audio
	AudioDeviceHeadphones                 // Wired headphones
)

type AudioDeviceInfo struct {
	Name       string
	DeviceType AudioDeviceType
	Transport  string
}

type audioDeviceRecord struct {
	Name            string
	Transport       string
	IsDefaultOutput bool
	IsConnected     bool
}

// AudioMonitor polls the default output device and calls onDisconnect when
// playback falls back from an external device to a built-in one
type AudioMonitor struct {
	checkInterval time.Duration
	onDisconnect  func()
	listDevices   func() []audioDeviceRecord
	supported     bool
	log           *logrus.Entry
}

func NewAudioMonitor(onDisconnect func()) *AudioMonitor {
	return &AudioMonitor{
		checkInterval: 500 * time.Millisecond,
		onDisconnect:  onDisconnect,
		listDevices:   getAudioDeviceRecords,
		supported:     runtime.GOOS == "darwin",
		log:           logging.For("device"),
	}
}

// Run blocks until ctx is done. On unsupported platforms it returns at once.
func (m *AudioMonitor) Run(ctx context.Context) {
	if !m.supported {
		m.log.Info("audio monitor disabled: unsupported platform")
		return
	}

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	last := selectCurrentDevice(m.listDevices())
	if last != nil {
		m.log.WithField("device", last.Name).Debug("initial audio device")
	}

	for {
		select {
		case <-ticker.C:
			current := selectCurrentDevice(m.listDevices())
			if current == nil {
				continue
			}
			if last != nil && isExternalDevice(last.DeviceType) && !isExternalDevice(current.DeviceType) {
				m.log.WithFields(logrus.Fields{"from": last.Name, "to": current.Name}).Info("external audio device disconnected")
				if m.onDisconnect != nil {
					m.onDisconnect()
				}
			}
			last = current
		case <-ctx.Done():
			m.log.Debug("audio monitor stopped")
			return
		}
	}
}

func selectCurrentDevice(records []audioDeviceRecord) *AudioDeviceInfo {
	var fallback *AudioDeviceInfo

	for _, rec := range records {
		info := &AudioDeviceInfo{
			Name:       rec.Name,
			DeviceType: detectDeviceType(rec.Name, rec.Transport),
			Transport:  rec.Transport,
		}

		if rec.IsDefaultOutput && rec.IsConnected {
			return info
		}
		if rec.IsDefaultOutput && fallback == nil {
			fallback = info
			continue
		}
		if fallback == nil && rec.IsConnected {
			fallback = info
		}
	}

	return fallback
}

var transportTypes = map[string]AudioDeviceType{
	"bluetooth":   AudioDeviceBluetooth,
	"wireless":    AudioDeviceBluetooth,
	"ble":         AudioDeviceBluetooth,
	"usb":         AudioDeviceUSB,
	"usb audio":   AudioDeviceUSB,
	"hdmi":        AudioDeviceHDMI,
	"displayport": AudioDeviceHDMI,
	"thunderbolt": AudioDeviceHDMI,
	"built-in":    AudioDeviceBuiltIn,
	"internal":    AudioDeviceBuiltIn,
	"headphone":   AudioDeviceHeadphones,
	"headset":     AudioDeviceHeadphones,
	"analog":      AudioDeviceHeadphones,
}

// checked in order: a name can match several lists
var nameHints = []struct {
	deviceType AudioDeviceType
	words      []string
}{
	{AudioDeviceBluetooth, []string{"bluetooth", "airpods", "beats", "sony wh", "sony wf", "bose", "jabra", "sennheiser", "jbl", "marshall"}},
	{AudioDeviceBuiltIn, []string{"built-in", "internal", "macbook", "imac", "mac mini", "mac pro", "speakers"}},
	{AudioDeviceUSB, []string{"usb", "dac", "audio interface"}},
	{AudioDeviceHDMI, []string{"hdmi", "displayport", "display audio"}},
	{AudioDeviceHeadphones, []string{"headphone", "headset"}},
}

func detectDeviceType(name, transport string) AudioDeviceType {
	if t, ok := transportTypes[strings.ToLower(strings.TrimSpace(transport))]; ok {
		return t
	}

	nameLower := strings.ToLower(strings.TrimSpace(name))
	for _, hint := range nameHints {
		if lo.SomeBy(hint.words, func(w string) bool { return strings.Contains(nameLower, w) }) {
			return hint.deviceType
		}
	}
	return AudioDeviceUnknown
}

func isExternalDevice(deviceType AudioDeviceType) bool {
	return deviceType == AudioDeviceBluetooth ||
		deviceType == AudioDeviceUSB ||
		deviceType == AudioDeviceHDMI ||
		deviceType == AudioDeviceHeadphones
}

func getAudioDeviceRecords() []audioDeviceRecord {
	log := logging.For("device")
	output, err := exec.Command("system_profiler", "SPAudioDataType", "-json").Output()
	if err != nil {
		log.WithError(err).Debug("failed to get audio devices")
		return nil
	}

	records, err := parseAudioDeviceRecords(output)
	if err != nil {
		log.WithError(err).Debug("failed to parse audio devices JSON")
		return nil
	}
	return records
}

func parseAudioDeviceRecords(data []byte) ([]audioDeviceRecord, error) {
	var root struct {
		Entries []struct {
			Items []map[string]any `json:"_items"`
		} `json:"SPAudioDataType"`
	}
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	records := make([]audioDeviceRecord, 0)
	for _, entry := range root.Entries {
		for _, item := range entry.Items {
			name := getStringValue(item, "_name", "name")
			if name == "" {
				continue
			}

			_, isDefault := mapHasTruthyValue(item,
				"coreaudio_device_is_default_output",
				"coreaudio_default_audio_output_device",
				"default_output_device",
			)
			foundConnected, isConnected := mapHasTruthyValue(item,
				"coreaudio_device_is_alive",
				"device_is_connected",
				"connected",
			)

			records = append(records, audioDeviceRecord{
				Name:            name,
				Transport:       getStringValue(item, "coreaudio_device_transport", "transport"),
				IsDefaultOutput: isDefault,
				IsConnected:     isConnected || !foundConnected,
			})
		}
	}
	return records, nil
}

func getStringValue(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func mapHasTruthyValue(m map[string]any, keys ...string) (found bool, value bool) {
	for _, key := range keys {
		switch v := m[key].(type) {
		case bool:
			return true, v
		case float64:
			return true, v != 0
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "yes", "true", "1", "on", "spaudio_yes", "enabled":
				return true, true
			case "no", "false", "0", "off", "spaudio_no", "disabled":
				return true, false
			}
		}
	}
	return false, false
}
