package device

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

const profilerJSON = `{
  "SPAudioDataType": [{
    "_items": [
      {"_name": "MacBook Pro Speakers", "coreaudio_device_transport": "coreaudio_device_type_builtin"},
      {"_name": "AirPods Pro", "coreaudio_device_transport": "bluetooth", "coreaudio_default_audio_output_device": "spaudio_yes"},
      {"_name": "Old DAC", "coreaudio_device_is_alive": "spaudio_no"},
      {"name": ""}
    ]
  }]
}`

func TestParseAudioDeviceRecords(t *testing.T) {
	records, err := parseAudioDeviceRecords([]byte(profilerJSON))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 named records, got %d", len(records))
	}
	if !records[1].IsDefaultOutput || records[1].Transport != "bluetooth" {
		t.Errorf("unexpected AirPods record %+v", records[1])
	}
	if records[2].IsConnected {
		t.Errorf("a device reported not alive must not be connected")
	}
	if !records[0].IsConnected {
		t.Errorf("a device without an alive flag counts as connected")
	}

	current := selectCurrentDevice(records)
	if current == nil || current.Name != "AirPods Pro" || current.DeviceType != AudioDeviceBluetooth {
		t.Errorf("expected the default output to be selected, got %+v", current)
	}
}

func TestDetectDeviceType(t *testing.T) {
	cases := []struct {
		name, transport string
		want            AudioDeviceType
	}{
		{"Whatever", "USB", AudioDeviceUSB},
		{"AirPods Max", "", AudioDeviceBluetooth},
		{"MacBook Air Speakers", "", AudioDeviceBuiltIn},
		{"LG HDMI", "", AudioDeviceHDMI},
		{"External Headphones", "", AudioDeviceHeadphones},
		{"Mystery Box", "", AudioDeviceUnknown},
	}
	for _, tc := range cases {
		if got := detectDeviceType(tc.name, tc.transport); got != tc.want {
			t.Errorf("detectDeviceType(%q, %q) = %v, want %v", tc.name, tc.transport, got, tc.want)
		}
	}
}

func TestMonitorFiresOnFallbackToBuiltIn(t *testing.T) {
	var step int32
	var fired int32
	m := NewAudioMonitor(func() { atomic.AddInt32(&fired, 1) })
	m.supported = true
	m.checkInterval = time.Millisecond
	m.listDevices = func() []audioDeviceRecord {
		if atomic.AddInt32(&step, 1) < 3 {
			return []audioDeviceRecord{{Name: "AirPods", Transport: "bluetooth", IsDefaultOutput: true, IsConnected: true}}
		}
		return []audioDeviceRecord{{Name: "MacBook Speakers", IsDefaultOutput: true, IsConnected: true}}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&fired) == 0 {
		select {
		case <-deadline:
			cancel()
			t.Fatal("onDisconnect was never called")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-done

	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Errorf("expected exactly one disconnect, got %d", got)
	}
}

func TestMonitorUnsupportedReturns(t *testing.T) {
	m := NewAudioMonitor(nil)
	m.supported = false
	m.Run(context.Background())
}
