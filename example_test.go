package wslmanager_test

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ubuntu/wslmanager"
	"github.com/ubuntu/wslmanager/mock"
)

func ExampleManager_InstalledDistros() {
	b := mock.New()
	b.AddDistro("Ubuntu", "Running", "2")
	b.AddDistro("Debian", "Stopped", "1")

	m := wslmanager.New(wslmanager.WithBackend(b))

	distros, err := m.InstalledDistros(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unexpected error: %v\n", err)
		return
	}

	for _, d := range distros {
		fmt.Printf("%s is %s (default: %t)\n", d.Name, d.State, d.IsDefault)
	}

	// Output:
	// Ubuntu is Running (default: true)
	// Debian is Stopped (default: false)
}

func ExampleEnterpriseDistros() {
	m := wslmanager.New(wslmanager.WithBackend(mock.New()))

	distros, err := m.OnlineDistros(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unexpected error: %v\n", err)
		return
	}

	for _, c := range wslmanager.InstallCommands(wslmanager.EnterpriseDistros(distros)) {
		fmt.Println(c)
	}

	// Output:
	// wsl --install OracleLinux_7_9
	// wsl --install OracleLinux_8_7
	// wsl --install OracleLinux_9_1
	// wsl --install openSUSE-Leap-15.6
	// wsl --install SUSE-Linux-Enterprise-15-SP5
	// wsl --install openSUSE-Tumbleweed
}

func ExampleManager_Rename() {
	storage, err := os.MkdirTemp("", "wslmanager-example-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Setup: %v\n", err)
		return
	}
	defer os.RemoveAll(storage)

	b := mock.New()
	b.AddDistro("Ubuntu", "Stopped", "2")

	m := wslmanager.New(
		wslmanager.WithBackend(b),
		wslmanager.WithStorageDir(storage),
		wslmanager.WithProgress(func(e wslmanager.Event) {
			if e.Step == "" {
				fmt.Printf("%s -> %s\n", e.Distro, e.State)
			}
		}),
	)

	if err := m.Rename(context.Background(), "Ubuntu", "Work"); err != nil {
		fmt.Fprintf(os.Stderr, "Unexpected error: %v\n", err)
		return
	}

	// Renaming onto an existing name is refused before anything is touched.
	err = m.Rename(context.Background(), "Work", "Work")
	var conflict *wslmanager.ConflictError
	fmt.Println(errors.As(err, &conflict))

	// Output:
	// Ubuntu -> Exported
	// Ubuntu -> Imported
	// Ubuntu -> OriginalRemoved
	// Ubuntu -> Done
	// true
}
