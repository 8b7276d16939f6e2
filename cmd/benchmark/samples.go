package main

// Sample represents a benchmark lecture sample.
type Sample struct {
	Name string
	Text string
}

// Samples contains lecture transcripts at varying lengths. Used by the
// default benchmark mode for end-to-end pipeline timing.
var Samples = []Sample{
	{
		Name: "tiny",
		Text: "Photosynthesis is the process by which green plants convert sunlight, water, and carbon dioxide into glucose and oxygen inside the chloroplasts.",
	},
	{
		Name: "short",
		Text: `Welcome to this introduction to Artificial Intelligence. AI refers to the capability of machines to perform tasks that normally require human intelligence, such as perception, reasoning, and learning. The field is commonly divided into narrow AI, which targets a single task like image classification or speech recognition, and general AI, which would match human flexibility across domains and remains hypothetical. Modern progress is driven mostly by machine learning, where systems improve from data rather than hand-written rules.`,
	},
	{
		Name: "medium",
		Text: `Today's lecture covers the fundamentals of machine learning. Machine learning is a subfield of artificial intelligence concerned with algorithms that improve automatically through experience.

There are three main paradigms. In supervised learning, the algorithm is trained on labeled examples: inputs paired with the correct outputs. Typical tasks are classification, where the output is a category, and regression, where the output is a continuous value. In unsupervised learning, the algorithm receives unlabeled data and must discover structure on its own, for example by clustering similar points or reducing dimensionality. In reinforcement learning, an agent interacts with an environment, takes actions, and learns a policy that maximizes cumulative reward.

A central concern in all three paradigms is generalization: a model must perform well on data it has never seen. When a model memorizes its training set instead, we call this overfitting, and we combat it with techniques such as regularization, cross-validation, and early stopping.

Deep learning, which uses neural networks with many layers, has become the dominant approach for perception tasks such as vision and speech. Convolutional networks exploit spatial structure in images, while transformers, built around the attention mechanism, now dominate natural language processing.`,
	},
	{
		Name: "long",
		Text: `This session gives an overview of the history and core concepts of operating systems.

An operating system is the software layer that manages a computer's hardware and provides common services to application programs. Its responsibilities fall into a few broad areas: process management, memory management, file systems, device management, and security.

Process management is about multiplexing the CPU. Each running program is represented as a process, with its own address space, registers, and state. The scheduler decides which process runs next; classic policies include round robin, priority scheduling, and multilevel feedback queues. Processes may contain multiple threads, which share an address space and make concurrency cheaper, at the cost of synchronization problems such as race conditions and deadlock. The standard tools for synchronization are locks, semaphores, condition variables, and message passing.

Memory management gives each process the illusion of a large private memory. Virtual memory maps process addresses to physical frames through page tables, with the hardware's MMU translating addresses on every access. When physical memory runs short, the OS evicts pages to disk; replacement policies such as least recently used approximate the optimal strategy. Paging also enables protection, sharing, and memory-mapped files.

File systems organize persistent storage into named files and directories. A file system must track where each file's blocks live, maintain metadata such as permissions and timestamps, and survive crashes. Journaling file systems write intended changes to a log before applying them so that recovery after a crash is fast and safe.

Device management hides hardware diversity behind uniform interfaces. Drivers translate generic requests into device-specific commands, and interrupts let devices signal completion without busy waiting. Direct memory access offloads bulk data transfer from the CPU.

Finally, protection and security cut across all of these areas. The kernel runs in a privileged mode, user programs request services through system calls, and access control lists or capabilities determine who may do what. Modern systems add isolation mechanisms such as containers and virtual machines, which an operating systems course treats as a natural extension of the same principles: multiplexing, abstraction, and protection.`,
	},
}
