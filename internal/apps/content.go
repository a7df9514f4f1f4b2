package apps

import "github.com/1broseidon/deskos/internal/registry"

const (
	systemName    = "DeskOS v1.2.0"
	systemBanner  = "DeskOS v1.2.0 (FOSal Runtime)"
	homeDirectory = "/Users/Prajwal"
)

// SocialLinks are the owner's public profiles.
var SocialLinks = struct {
	LinkedIn  string
	GitHub    string
	Portfolio string
	Email     string
}{
	LinkedIn:  "https://www.linkedin.com/in/prajwalshelar/",
	GitHub:    "https://github.com/prajwalshelar100",
	Portfolio: "https://prajwalshelar-portfolio.vercel.app/",
	Email:     "shelar.prajwal.99@gmail.com",
}

// Project is one portfolio entry.
type Project struct {
	ID          string
	Name        string
	Tagline     string
	Description string
	Tech        []string
	GitHubURL   string
}

// Portfolio lists the projects shown by the Projects app.
var Portfolio = []Project{
	{
		ID:          "deskos",
		Name:        "DeskOS",
		Tagline:     "A browser-hosted desktop environment for tools, experiments, and systems.",
		Description: "Designed and built a client-side desktop environment that runs entirely in the browser, featuring a window manager, application runtime, virtual file system, and OS-like interaction patterns. DeskOS serves as a personal workspace for building tools, showcasing projects, and experimenting with system-level abstractions.",
		Tech:        []string{"React", "TypeScript", "Vite", "Web APIs", "Cloudflare Pages"},
		GitHubURL:   "https://github.com/prajwalshelar100/deskos",
	},
	{
		ID:          "imd-rainfall",
		Name:        "IMD Rainfall Analyzer",
		Tagline:     "Deep predictive and spatio-temporal analysis of Indian monsoon data.",
		Description: "Developed an automated tool to analyze and visualize IMD rainfall data, integrating statistical analysis and custom modules. Patented research.",
		Tech:        []string{"Python", "Pandas", "Matplotlib", "Scikit-Learn", "Tkinter"},
		GitHubURL:   "https://github.com/prajwalshelar100/imd-rainfall-analyzer",
	},
	{
		ID:          "image-recognition",
		Name:        "Automated Image Recognition",
		Tagline:     "Face detection and automatic capture system.",
		Description: "A Java-based system capable of detecting faces and automatically capturing images using Computer Vision (OpenCV).",
		Tech:        []string{"Java", "Swing", "OpenCV", "JDBC"},
		GitHubURL:   "https://github.com/prajwalshelar100/opencv-microservice",
	},
}

// Node is an entry of the virtual file system. Files name the application
// that opens them.
type Node struct {
	Name     string
	Dir      bool
	AppID    string
	Children []*Node
}

func dir(name string, children ...*Node) *Node {
	return &Node{Name: name, Dir: true, Children: children}
}

func file(name, appID string) *Node {
	return &Node{Name: name, AppID: appID}
}

// FileSystem returns a fresh copy of the virtual file system root.
func FileSystem() *Node {
	return dir("",
		dir("Users",
			dir("Prajwal",
				dir("Documents"),
				dir("Code"),
				file("Projects", registry.Projects),
				file("Resume.pdf", registry.Resume),
				file("Notes", registry.Notes),
				file("CodeStudio", registry.CodeStudio),
				file("Terminal", registry.Terminal),
			),
		),
	)
}

const resumeText = `PRAJWAL SHELAR
Software Engineer | Systems & AI Specialist

Bengaluru, Karnataka
shelar.prajwal.100@gmail.com

EDUCATION
Dayananda Sagar College of Engineering
  Master's of Computer Application (MCA), 9.41 CGPA
  Oct 2022 - Oct 2024
Amity University
  Bachelor of Science (B.Sc.) in Physics (Hons.), 9.40 CGPA
  Aug 2017 - Aug 2020

KEY RESEARCH & PROJECTS
IMD Rainfall Analyzer
  Developed an automated tool to analyze and visualize IMD rainfall data, integrating statistical analysis and custom modules with a user-friendly GUI. Patent pending for innovative spatio-temporal modeling.
Image Recognition System
  Real-time face detection and automatic capturing system using Java, OpenCV, and JDBC integration.

PATENTS
Patent #118561 (Dec 2024)
  Lead inventor of a system for analyzing large-scale rainfall data, enabling spatio-temporal analysis and predictive modeling for agriculture and urban planning.`

const aboutText = `About DeskOS

DeskOS (Desktop Operating System) is a high-fidelity desktop environment designed to showcase systems-oriented interface architecture.

Window Manager: a z-order and coordinate management system for true multi-window multitasking.
App Ecosystem: native-like modules for Code, Calculation, and Communication (CodeStudio, LiveRoom).
VFS: a virtual file system abstraction that mirrors traditional Unix directory structures.`
