package ecscore

import "testing"

type fakeAssetLoader struct{ loaded int }

func TestWorldQueryInterfaceDefault(t *testing.T) {
	w := NewWorld()
	v, ok := w.QueryInterface(CapWorldView)
	if !ok {
		t.Fatal("QueryInterface(CapWorldView) = false")
	}
	if v.(*World) != w {
		t.Fatal("QueryInterface(CapWorldView) did not return the same World")
	}
}

func TestWorldQueryInterfaceUnsupported(t *testing.T) {
	w := NewWorld()
	if _, ok := w.QueryInterface(CapabilityID(999)); ok {
		t.Fatal("QueryInterface on an unregistered capability returned true")
	}
}

func TestCapabilityRegistryCustomProvide(t *testing.T) {
	w := NewWorld()
	loaderCap := w.Capabilities().NextID()
	w.Capabilities().Provide(loaderCap, &fakeAssetLoader{loaded: 3})

	v, ok := w.QueryInterface(loaderCap)
	if !ok {
		t.Fatal("QueryInterface did not find the provided capability")
	}
	loader, ok := v.(*fakeAssetLoader)
	if !ok || loader.loaded != 3 {
		t.Fatalf("QueryInterface returned %#v, want *fakeAssetLoader{loaded: 3}", v)
	}
}
